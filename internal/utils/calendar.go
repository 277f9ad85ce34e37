package utils

import (
	"time"

	"rental-tracker-backend/internal/domain"
)

// Calendar answers "what day is it" for a fixed location so that cost and
// date filters never read the wall clock directly.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

// FixedCalendar always reports the given day.
func FixedCalendar(day domain.Date) *Calendar {
	return NewCalendar(time.UTC, func() time.Time { return day.Time })
}

func (c *Calendar) Today() domain.Date {
	return domain.DateOf(c.now().In(c.loc))
}

func (c *Calendar) Now() time.Time {
	return c.now()
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}
