package analytics

import (
	"sort"

	"github.com/ukarim/fleet-analytics/internal/models"
)

// CostByMonth groups maintenance and fuel spending into per-calendar-month
// totals. Months from either source share a bucket; the result has one row
// per "YYYY-MM" key, sorted ascending (which is chronological by
// construction). Empty inputs yield an empty slice.
func CostByMonth(maintenance []models.Maintenance, fuel []models.FuelRecord) []models.MonthlyCost {
	buckets := make(map[string]*models.MonthlyCost)
	bucket := func(month string) *models.MonthlyCost {
		if b, ok := buckets[month]; ok {
			return b
		}
		b := &models.MonthlyCost{Month: month}
		buckets[month] = b
		return b
	}

	for _, m := range maintenance {
		bucket(m.ServiceDate.Format("2006-01")).MaintenanceCost += m.Cost
	}
	for _, f := range fuel {
		bucket(f.Date.Format("2006-01")).FuelCost += f.TotalCost
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	rows := make([]models.MonthlyCost, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		b.TotalCost = b.FuelCost + b.MaintenanceCost
		rows = append(rows, *b)
	}
	return rows
}
