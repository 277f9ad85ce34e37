package utils

import (
	"math"

	"rental-tracker-backend/internal/domain"
)

const (
	daysPerWeek = 7
	// daysPerMonth is the average month length used for monthly billing.
	daysPerMonth = 30.44
)

// RentalCostBreakdown provides detailed cost breakdown
type RentalCostBreakdown struct {
	Days        int               `json:"days"`
	BilledUnits int               `json:"billed_units"`
	RateOption  domain.RateOption `json:"rate_option"`
	UnitRate    float64           `json:"unit_rate"`
	Total       float64           `json:"total"`
}

// DurationDays counts the days between start and end, both included.
// It returns 0 when end is before start.
func DurationDays(start, end domain.Date) int {
	if end.Before(start) {
		return 0
	}
	diff := end.Sub(start.Time)
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// CalculateRentalCost returns the cost of a rental. Open rentals are costed
// through today. A return date before the rental date costs nothing.
func CalculateRentalCost(r domain.RentalRecord, today domain.Date) float64 {
	return CalculateRentalCostWithBreakdown(r, today).Total
}

// CalculateRentalCostWithBreakdown provides detailed breakdown of rental cost
func CalculateRentalCostWithBreakdown(r domain.RentalRecord, today domain.Date) RentalCostBreakdown {
	end := today
	if r.ReturnDate != nil {
		end = *r.ReturnDate
	}

	breakdown := RentalCostBreakdown{RateOption: r.RateOption}
	days := DurationDays(r.RentalDate, end)
	if days == 0 {
		return breakdown
	}
	breakdown.Days = days

	switch r.RateOption {
	case domain.RateOptionDaily:
		breakdown.BilledUnits = days
		breakdown.UnitRate = r.DailyRate
	case domain.RateOptionWeekly:
		breakdown.BilledUnits = int(math.Ceil(float64(days) / daysPerWeek))
		breakdown.UnitRate = r.WeeklyRate
	case domain.RateOptionMonthly:
		breakdown.BilledUnits = int(math.Ceil(float64(days) / daysPerMonth))
		breakdown.UnitRate = r.MonthlyRate
	default:
		return breakdown
	}

	breakdown.Total = float64(breakdown.BilledUnits) * breakdown.UnitRate
	return breakdown
}

// PriceRentals pairs every record with its cost as of today.
func PriceRentals(records []domain.RentalRecord, today domain.Date) []domain.PricedRental {
	priced := make([]domain.PricedRental, 0, len(records))
	for _, r := range records {
		priced = append(priced, domain.PricedRental{RentalRecord: r, Cost: CalculateRentalCost(r, today)})
	}
	return priced
}

// SumCosts totals the cost of the given records.
func SumCosts(records []domain.RentalRecord, today domain.Date) float64 {
	var total float64
	for _, r := range records {
		total += CalculateRentalCost(r, today)
	}
	return total
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
