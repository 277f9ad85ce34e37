package utils

import (
	"sort"

	"rental-tracker-backend/internal/domain"
)

type groupTotal struct {
	key   string
	total float64
}

// groupCosts sums costs per key, keeping first-seen order before a stable
// sort by descending total.
func groupCosts(records []domain.RentalRecord, today domain.Date, key func(domain.RentalRecord) string) ([]groupTotal, float64) {
	index := make(map[string]int)
	groups := make([]groupTotal, 0)
	var grand float64

	for _, r := range records {
		cost := CalculateRentalCost(r, today)
		grand += cost

		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, groupTotal{key: k})
		}
		groups[i].total += cost
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].total > groups[b].total
	})
	return groups, grand
}

// AggregateByProject totals costs per project, highest first, with the
// grand total over all given records.
func AggregateByProject(records []domain.RentalRecord, today domain.Date) domain.CostReport {
	groups, grand := groupCosts(records, today, func(r domain.RentalRecord) string { return r.Project })
	report := domain.CostReport{
		Projects:   make([]domain.ProjectTotal, 0, len(groups)),
		GrandTotal: grand,
	}
	for _, g := range groups {
		report.Projects = append(report.Projects, domain.ProjectTotal{Project: g.key, Total: g.total})
	}
	return report
}

// AggregateBySupplier totals costs per supplier, highest first.
func AggregateBySupplier(records []domain.RentalRecord, today domain.Date) []domain.SupplierTotal {
	groups, _ := groupCosts(records, today, func(r domain.RentalRecord) string { return r.Supplier })
	totals := make([]domain.SupplierTotal, 0, len(groups))
	for _, g := range groups {
		totals = append(totals, domain.SupplierTotal{Supplier: g.key, Total: g.total})
	}
	return totals
}
