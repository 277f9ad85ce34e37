package utils

import "rental-tracker-backend/internal/domain"

// CollectionEvent is a completed change to the rental collection.
type CollectionEvent interface {
	apply(current []domain.RentalRecord) []domain.RentalRecord
}

type RentalsLoaded struct {
	Records []domain.RentalRecord
}

type RentalSaved struct {
	Record domain.RentalRecord
}

type RentalToggled struct {
	Record domain.RentalRecord
}

type RentalDeleted struct {
	ID string
}

// Reduce returns the collection after event. current is never modified.
func Reduce(current []domain.RentalRecord, event CollectionEvent) []domain.RentalRecord {
	if event == nil {
		return clone(current)
	}
	return event.apply(current)
}

func (e RentalsLoaded) apply(_ []domain.RentalRecord) []domain.RentalRecord {
	return clone(e.Records)
}

func (e RentalSaved) apply(current []domain.RentalRecord) []domain.RentalRecord {
	if next, ok := replace(current, e.Record); ok {
		return next
	}
	next := make([]domain.RentalRecord, 0, len(current)+1)
	next = append(next, e.Record)
	return append(next, current...)
}

func (e RentalToggled) apply(current []domain.RentalRecord) []domain.RentalRecord {
	next, _ := replace(current, e.Record)
	return next
}

func (e RentalDeleted) apply(current []domain.RentalRecord) []domain.RentalRecord {
	next := make([]domain.RentalRecord, 0, len(current))
	for _, r := range current {
		if r.ID != e.ID {
			next = append(next, r)
		}
	}
	return next
}

func replace(current []domain.RentalRecord, record domain.RentalRecord) ([]domain.RentalRecord, bool) {
	next := clone(current)
	for i := range next {
		if next[i].ID == record.ID {
			next[i] = record
			return next, true
		}
	}
	return next, false
}

func clone(records []domain.RentalRecord) []domain.RentalRecord {
	out := make([]domain.RentalRecord, len(records))
	copy(out, records)
	return out
}
