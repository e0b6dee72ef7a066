package analytics

import (
	"math"
	"sort"

	"github.com/ukarim/fleet-analytics/internal/models"
)

// maxPlausibleGapKm is the upper bound on a believable odometer delta between
// two consecutive fill-ups. Deltas at or above it mean missed records or an
// odometer rollover and are excluded from consumption averages, as are
// zero/negative deltas from duplicate or corrupted data.
const maxPlausibleGapKm = 2000.0

// MileageForPeriod computes the distance driven from the records of a period.
// Trip distances are direct observations and take strict priority; only when
// no trips exist does it fall back to the odometer spread of the fuel
// records. Fewer than two fuel records give no interval, so 0.
func MileageForPeriod(trips []models.Trip, fuel []models.FuelRecord) float64 {
	if len(trips) > 0 {
		var total float64
		for _, t := range trips {
			total += t.Distance
		}
		return math.Round(total)
	}
	if len(fuel) < 2 {
		return 0
	}
	lowest, highest := fuel[0].Odometer, fuel[0].Odometer
	for _, f := range fuel[1:] {
		if f.Odometer < lowest {
			lowest = f.Odometer
		}
		if f.Odometer > highest {
			highest = f.Odometer
		}
	}
	return highest - lowest
}

// AverageFuelEfficiency computes the average consumption rate in liters per
// 100 km from a vehicle's fill-up history. Full-tank records bound complete
// consumption intervals, so the full-tank subsequence is preferred whenever
// it has at least two members; otherwise all records are used as the best
// available signal. Fewer than two records is insufficient data, not an
// error, and yields 0.
func AverageFuelEfficiency(fuel []models.FuelRecord) float64 {
	if len(fuel) < 2 {
		return 0
	}
	records := make([]models.FuelRecord, len(fuel))
	copy(records, fuel)
	sort.Slice(records, func(i, j int) bool {
		return records[i].Odometer < records[j].Odometer
	})

	var fullTank []models.FuelRecord
	for _, r := range records {
		if r.FullTank {
			fullTank = append(fullTank, r)
		}
	}
	if len(fullTank) >= 2 {
		records = fullTank
	}

	volume, distance := consumptionTotals(records)
	if volume == 0 || distance == 0 {
		return 0
	}
	return round1(volume / distance * 100)
}

// consumptionTotals walks consecutive record pairs (ordered by odometer) and
// accumulates the odometer delta plus the newer record's fill volume for
// every pair whose delta is plausible.
func consumptionTotals(records []models.FuelRecord) (volume, distance float64) {
	for i := 1; i < len(records); i++ {
		delta := records[i].Odometer - records[i-1].Odometer
		if delta <= 0 || delta >= maxPlausibleGapKm {
			continue
		}
		distance += delta
		volume += records[i].Liters
	}
	return volume, distance
}

// FuelEfficiencyTrend groups fill-ups by calendar month and computes the
// consumption rate per month. Months with fewer than two records, or whose
// computed rate is 0, are omitted. The series is ordered chronologically.
func FuelEfficiencyTrend(fuel []models.FuelRecord) []models.EfficiencyTrendPoint {
	byMonth := make(map[string][]models.FuelRecord)
	for _, r := range fuel {
		key := r.Date.Format("2006-01")
		byMonth[key] = append(byMonth[key], r)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]models.EfficiencyTrendPoint, 0, len(months))
	for _, m := range months {
		group := byMonth[m]
		if len(group) < 2 {
			continue
		}
		rate := AverageFuelEfficiency(group)
		if rate == 0 {
			continue
		}
		points = append(points, models.EfficiencyTrendPoint{Month: m, LitersPer100Km: rate})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
