package http

import (
	"fmt"
	"net/url"
	"strings"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/service"
	"rental-tracker-backend/internal/utils"
)

const presetLast30Days = "last30days"

// parseRentalFilter reads the list filters from a query string. An exact
// date and a preset are mutually exclusive.
func parseRentalFilter(q url.Values) (utils.RentalFilter, error) {
	filter := utils.RentalFilter{
		Supplier: strings.TrimSpace(q.Get("supplier")),
		Project:  strings.TrimSpace(q.Get("project")),
		Date:     utils.Unconstrained(),
	}

	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); !utils.IsWildcard(status) {
		s := domain.RentalStatus(status)
		if !s.Valid() {
			return filter, validationErr("invalid status %q", status)
		}
		filter.Status = s
	}

	date := strings.TrimSpace(q.Get("date"))
	preset := strings.ToLower(strings.TrimSpace(q.Get("preset")))
	if preset != "" && !utils.IsWildcard(preset) {
		if preset != presetLast30Days {
			return filter, validationErr("invalid preset %q", preset)
		}
		if date != "" {
			return filter, validationErr("date and preset cannot be combined")
		}
		return filter.WithRollingWindow(utils.DefaultRollingWindowDays), nil
	}
	if date != "" {
		day, err := domain.ParseDate(date)
		if err != nil {
			return filter, validationErr("%v", err)
		}
		return filter.WithExactDay(day), nil
	}
	return filter, nil
}

// sharedFilter scopes a query to the supplier of a read-only view.
func sharedFilter(q url.Values) (utils.RentalFilter, error) {
	filter, err := parseRentalFilter(q)
	if err != nil {
		return filter, err
	}
	if utils.IsWildcard(filter.Supplier) {
		return filter, validationErr("supplier is required")
	}
	return filter, nil
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", service.ErrValidation, fmt.Sprintf(format, args...))
}
