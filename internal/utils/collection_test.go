package utils

import (
	"testing"

	"rental-tracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	base := []domain.RentalRecord{
		{ID: "1", Supplier: "Acme"},
		{ID: "2", Supplier: "Beta"},
	}

	t.Run("Loaded replaces collection", func(t *testing.T) {
		next := Reduce(base, RentalsLoaded{Records: []domain.RentalRecord{{ID: "9"}}})
		assert.Equal(t, []string{"9"}, ids(next))
	})

	t.Run("Saved new record is prepended", func(t *testing.T) {
		next := Reduce(base, RentalSaved{Record: domain.RentalRecord{ID: "3"}})
		assert.Equal(t, []string{"3", "1", "2"}, ids(next))
	})

	t.Run("Saved existing record is replaced in place", func(t *testing.T) {
		next := Reduce(base, RentalSaved{Record: domain.RentalRecord{ID: "2", Supplier: "Gamma"}})
		assert.Equal(t, []string{"1", "2"}, ids(next))
		assert.Equal(t, "Gamma", next[1].Supplier)
	})

	t.Run("Toggled replaces record", func(t *testing.T) {
		returned := date(2024, 7, 15)
		next := Reduce(base, RentalToggled{Record: domain.RentalRecord{ID: "1", Supplier: "Acme", ReturnDate: &returned}})
		assert.Equal(t, domain.RentalStatusReturned, next[0].Status())
	})

	t.Run("Toggled unknown record is ignored", func(t *testing.T) {
		next := Reduce(base, RentalToggled{Record: domain.RentalRecord{ID: "7"}})
		assert.Equal(t, []string{"1", "2"}, ids(next))
	})

	t.Run("Deleted removes record", func(t *testing.T) {
		next := Reduce(base, RentalDeleted{ID: "1"})
		assert.Equal(t, []string{"2"}, ids(next))
	})

	t.Run("Nil event copies", func(t *testing.T) {
		next := Reduce(base, nil)
		assert.Equal(t, base, next)
	})

	t.Run("Current collection is never modified", func(t *testing.T) {
		snapshot := []domain.RentalRecord{{ID: "1", Supplier: "Acme"}, {ID: "2", Supplier: "Beta"}}
		Reduce(base, RentalSaved{Record: domain.RentalRecord{ID: "2", Supplier: "Changed"}})
		Reduce(base, RentalDeleted{ID: "1"})
		assert.Equal(t, snapshot, base)
	})
}
