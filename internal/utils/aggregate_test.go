package utils

import (
	"testing"

	"rental-tracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

// dailyRental costs exactly amount: a same-day daily rental.
func dailyRental(id, supplier, project string, amount float64) domain.RentalRecord {
	d := date(2024, 7, 1)
	return domain.RentalRecord{
		ID:         id,
		Supplier:   supplier,
		Project:    project,
		RateOption: domain.RateOptionDaily,
		DailyRate:  amount,
		RentalDate: d,
		ReturnDate: &d,
	}
}

func TestAggregateByProject(t *testing.T) {
	today := date(2024, 7, 15)

	t.Run("Groups and sorts descending", func(t *testing.T) {
		records := []domain.RentalRecord{
			dailyRental("1", "Acme", "projectA", 100),
			dailyRental("2", "Acme", "projectA", 50),
			dailyRental("3", "Beta", "projectB", 30),
		}

		report := AggregateByProject(records, today)
		assert.Equal(t, []domain.ProjectTotal{
			{Project: "projectA", Total: 150},
			{Project: "projectB", Total: 30},
		}, report.Projects)
		assert.Equal(t, 180.0, report.GrandTotal)
	})

	t.Run("Higher total moves ahead of first seen", func(t *testing.T) {
		records := []domain.RentalRecord{
			dailyRental("1", "Acme", "small", 10),
			dailyRental("2", "Acme", "big", 500),
		}
		report := AggregateByProject(records, today)
		assert.Equal(t, "big", report.Projects[0].Project)
		assert.Equal(t, "small", report.Projects[1].Project)
	})

	t.Run("Ties keep first seen order", func(t *testing.T) {
		records := []domain.RentalRecord{
			dailyRental("1", "Acme", "first", 40),
			dailyRental("2", "Acme", "second", 40),
			dailyRental("3", "Acme", "third", 40),
		}
		report := AggregateByProject(records, today)
		assert.Equal(t, "first", report.Projects[0].Project)
		assert.Equal(t, "second", report.Projects[1].Project)
		assert.Equal(t, "third", report.Projects[2].Project)
	})

	t.Run("Empty input", func(t *testing.T) {
		report := AggregateByProject(nil, today)
		assert.Empty(t, report.Projects)
		assert.Equal(t, 0.0, report.GrandTotal)
	})
}

func TestAggregateBySupplier(t *testing.T) {
	records := []domain.RentalRecord{
		dailyRental("1", "Acme", "A", 20),
		dailyRental("2", "Beta", "A", 70),
		dailyRental("3", "Acme", "B", 30),
	}

	totals := AggregateBySupplier(records, date(2024, 7, 15))
	assert.Equal(t, []domain.SupplierTotal{
		{Supplier: "Beta", Total: 70},
		{Supplier: "Acme", Total: 50},
	}, totals)
}
