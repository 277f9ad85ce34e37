package utils

import (
	"rental-tracker-backend/internal/domain"
)

// Wildcard is the filter value meaning "no constraint".
const Wildcard = "all"

// DefaultRollingWindowDays backs the "last30days" preset.
const DefaultRollingWindowDays = 30

type DateFilterKind int

const (
	DateFilterUnconstrained DateFilterKind = iota
	DateFilterExactDay
	DateFilterRollingWindow
)

func (k DateFilterKind) String() string {
	switch k {
	case DateFilterExactDay:
		return "exact_day"
	case DateFilterRollingWindow:
		return "rolling_window"
	default:
		return "unconstrained"
	}
}

// DateFilter is exactly one of: no date constraint, rentals active on a given
// day, or rentals started within the last N days.
type DateFilter struct {
	kind DateFilterKind
	day  domain.Date
	days int
}

func Unconstrained() DateFilter {
	return DateFilter{kind: DateFilterUnconstrained}
}

func ExactDay(day domain.Date) DateFilter {
	return DateFilter{kind: DateFilterExactDay, day: day}
}

func RollingWindow(days int) DateFilter {
	if days < 0 {
		days = 0
	}
	return DateFilter{kind: DateFilterRollingWindow, days: days}
}

func (f DateFilter) Kind() DateFilterKind { return f.kind }
func (f DateFilter) Day() domain.Date     { return f.day }
func (f DateFilter) Days() int            { return f.days }

// Matches reports whether r satisfies the date constraint.
func (f DateFilter) Matches(r domain.RentalRecord, today domain.Date) bool {
	switch f.kind {
	case DateFilterExactDay:
		if r.RentalDate.After(f.day) {
			return false
		}
		return r.ReturnDate == nil || !r.ReturnDate.Before(f.day)
	case DateFilterRollingWindow:
		return !r.RentalDate.Before(today.AddDays(-f.days))
	default:
		return true
	}
}

// RentalFilter combines the independent predicates of a rental query.
// Empty strings and Wildcard leave a field unconstrained.
type RentalFilter struct {
	Supplier string
	Project  string
	Status   domain.RentalStatus
	Date     DateFilter
}

// WithExactDay replaces any date constraint with an exact-day one.
func (f RentalFilter) WithExactDay(day domain.Date) RentalFilter {
	f.Date = ExactDay(day)
	return f
}

// WithRollingWindow replaces any date constraint with a rolling window.
func (f RentalFilter) WithRollingWindow(days int) RentalFilter {
	f.Date = RollingWindow(days)
	return f
}

// WithSupplier forces the supplier predicate.
func (f RentalFilter) WithSupplier(supplier string) RentalFilter {
	f.Supplier = supplier
	return f
}

func (f RentalFilter) Matches(r domain.RentalRecord, today domain.Date) bool {
	if !IsWildcard(f.Supplier) && r.Supplier != f.Supplier {
		return false
	}
	if !IsWildcard(f.Project) && r.Project != f.Project {
		return false
	}
	if !IsWildcard(string(f.Status)) && r.Status() != f.Status {
		return false
	}
	return f.Date.Matches(r, today)
}

// FilterRentals returns the records matching every active predicate, in
// their original order. The input slice is left untouched.
func FilterRentals(records []domain.RentalRecord, filter RentalFilter, today domain.Date) []domain.RentalRecord {
	matched := make([]domain.RentalRecord, 0, len(records))
	for _, r := range records {
		if filter.Matches(r, today) {
			matched = append(matched, r)
		}
	}
	return matched
}

// IsWildcard reports whether a filter value matches everything. Only the
// empty string and the exact value "all" do.
func IsWildcard(value string) bool {
	return value == "" || value == Wildcard
}

// DistinctSuppliersAndProjects lists supplier and project names in the order
// they first appear.
func DistinctSuppliersAndProjects(records []domain.RentalRecord) ([]string, []string) {
	suppliers := make([]string, 0)
	projects := make([]string, 0)
	seenSupplier := make(map[string]struct{})
	seenProject := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seenSupplier[r.Supplier]; !ok {
			seenSupplier[r.Supplier] = struct{}{}
			suppliers = append(suppliers, r.Supplier)
		}
		if _, ok := seenProject[r.Project]; !ok {
			seenProject[r.Project] = struct{}{}
			projects = append(projects, r.Project)
		}
	}
	return suppliers, projects
}
