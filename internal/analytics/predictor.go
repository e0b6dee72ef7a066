package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ukarim/fleet-analytics/internal/models"
)

// assumedMonthlyKm is the fleet-average monthly driving distance used to
// convert a remaining-kilometers estimate into a calendar date.
const assumedMonthlyKm = 1600.0

// Default service-cost estimates, matched by keyword against the lower-cased
// service type. Used when a type has no cost history, including for the
// default schedule of a vehicle with no records at all.
var defaultServiceCosts = []struct {
	keyword string
	cost    float64
}{
	{"oil", 45.99},
	{"tire", 25.00},
	{"brake", 150.00},
	{"filter", 20.00},
	{"inspection", 89.99},
}

const fallbackServiceCost = 50.00

// Default-schedule heuristics per core service type: a service is considered
// due soon when the vehicle's age in months lands on the time interval, or
// its odometer sits within a narrow band past a periodic distance mark.
const (
	oilIntervalMonths        = 3
	oilIntervalKm            = 8000.0
	oilOdometerBandKm        = 800.0
	tireIntervalMonths       = 6
	tireIntervalKm           = 10000.0
	tireOdometerBandKm       = 1000.0
	inspectionIntervalMonths = 12
	inspectionIntervalKm     = 15000.0
	inspectionBandKm         = 1000.0
)

// UpcomingMaintenance predicts the maintenance a vehicle is due for, from its
// full service history. With no history at all it falls back to a default
// schedule derived from vehicle age and odometer. History-derived alerts are
// surfaced only when their due date falls inside the three-month horizon
// around now; the result is sorted by due date ascending.
func UpcomingMaintenance(vehicle models.Vehicle, history []models.Maintenance, now time.Time) []models.MaintenanceAlert {
	var alerts []models.MaintenanceAlert

	if len(history) == 0 {
		alerts = defaultSchedule(vehicle, now)
	} else {
		byType := make(map[string][]models.Maintenance)
		for _, m := range history {
			byType[m.ServiceType] = append(byType[m.ServiceType], m)
		}

		for serviceType, group := range byType {
			sort.Slice(group, func(i, j int) bool {
				return group[i].ServiceDate.After(group[j].ServiceDate)
			})
			latest := group[0]

			var due time.Time
			if latest.NextServiceDate != nil {
				due = *latest.NextServiceDate
			} else {
				due = predictNextServiceDate(serviceType, group, vehicle.Odometer, now)
			}
			if !withinDueSoonWindow(due, now) {
				continue
			}
			alerts = append(alerts, models.MaintenanceAlert{
				ServiceType:   serviceType,
				DueDate:       due,
				EstimatedCost: EstimateServiceCost(serviceType, group),
			})
		}

		// Gap-fill core service types the history never mentions. Keyword
		// matching keeps a "Full Synthetic Oil Change" record from producing
		// a duplicate "Oil Change" default.
		alerts = append(alerts, missingDefaultAlerts(vehicle, history, now)...)
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].DueDate.Before(alerts[j].DueDate)
	})
	return alerts
}

// withinDueSoonWindow reports whether due falls inside the three-month
// horizon around now, past or future. A service ten days overdue still
// qualifies; one due a year out does not.
func withinDueSoonWindow(due, now time.Time) bool {
	return !due.Before(now.AddDate(0, -3, 0)) && !due.After(now.AddDate(0, 3, 0))
}

// predictNextServiceDate forecasts the next due date for one service type.
// historyDesc must be the type's records sorted newest first and non-empty.
//
// With two or more records it averages the consecutive time and odometer
// deltas, projects a time-based date from the latest service and a
// mileage-based date from the kilometers left until the average interval is
// used up, and returns whichever fires first. With a single record it falls
// back to the standard interval for the type.
func predictNextServiceDate(serviceType string, historyDesc []models.Maintenance, currentOdometer float64, now time.Time) time.Time {
	latest := historyDesc[0]
	if len(historyDesc) < 2 {
		return latest.ServiceDate.AddDate(0, standardIntervalMonths(serviceType), 0)
	}

	var timeSum time.Duration
	var odoSum float64
	pairs := len(historyDesc) - 1
	for i := 0; i < pairs; i++ {
		newer, older := historyDesc[i], historyDesc[i+1]
		timeSum += newer.ServiceDate.Sub(older.ServiceDate)
		odoSum += newer.Odometer - older.Odometer
	}
	avgInterval := timeSum / time.Duration(pairs)
	avgOdoDelta := odoSum / float64(pairs)

	timeBased := latest.ServiceDate.Add(avgInterval)

	remainingKm := avgOdoDelta - (currentOdometer - latest.Odometer)
	if remainingKm < 0 {
		remainingKm = 0
	}
	monthsLeft := remainingKm / assumedMonthlyKm
	mileageBased := now.Add(time.Duration(monthsLeft * 30 * 24 * float64(time.Hour)))

	if mileageBased.Before(timeBased) {
		return mileageBased
	}
	return timeBased
}

// standardIntervalMonths maps a service type to its fixed time interval,
// matched by keyword on the lower-cased label.
func standardIntervalMonths(serviceType string) int {
	t := strings.ToLower(serviceType)
	switch {
	case strings.Contains(t, "oil"):
		return oilIntervalMonths
	case strings.Contains(t, "tire"):
		return tireIntervalMonths
	case strings.Contains(t, "brake"), strings.Contains(t, "filter"):
		return 12
	default:
		return 6
	}
}

// EstimateServiceCost returns the arithmetic mean of the type's historical
// costs, or the fixed per-type estimate when no history exists.
func EstimateServiceCost(serviceType string, history []models.Maintenance) float64 {
	if len(history) > 0 {
		var total float64
		for _, m := range history {
			total += m.Cost
		}
		return total / float64(len(history))
	}
	t := strings.ToLower(serviceType)
	for _, d := range defaultServiceCosts {
		if strings.Contains(t, d.keyword) {
			return d.cost
		}
	}
	return fallbackServiceCost
}

// defaultSchedule emits candidate alerts for a vehicle with no maintenance
// history, from age and odometer heuristics alone. Due dates are near-term
// day offsets rather than interval projections, since there is no anchor
// service to project from.
func defaultSchedule(vehicle models.Vehicle, now time.Time) []models.MaintenanceAlert {
	ageMonths := (now.Year()-vehicle.Year)*12 + int(now.Month()) - 1
	odometer := vehicle.Odometer

	var alerts []models.MaintenanceAlert
	if dueByAge(ageMonths, oilIntervalMonths) || dueByOdometer(odometer, oilIntervalKm, oilOdometerBandKm) {
		alerts = append(alerts, models.MaintenanceAlert{
			ServiceType:   "Oil Change",
			DueDate:       now.AddDate(0, 0, 14),
			EstimatedCost: EstimateServiceCost("Oil Change", nil),
		})
	}
	if dueByAge(ageMonths, tireIntervalMonths) || dueByOdometer(odometer, tireIntervalKm, tireOdometerBandKm) {
		alerts = append(alerts, models.MaintenanceAlert{
			ServiceType:   "Tire Rotation",
			DueDate:       now.AddDate(0, 0, 21),
			EstimatedCost: EstimateServiceCost("Tire Rotation", nil),
		})
	}
	if ageMonths >= 12 && (dueByAge(ageMonths, inspectionIntervalMonths) || dueByOdometer(odometer, inspectionIntervalKm, inspectionBandKm)) {
		alerts = append(alerts, models.MaintenanceAlert{
			ServiceType:   "Annual Inspection",
			DueDate:       now.AddDate(0, 0, 30),
			EstimatedCost: EstimateServiceCost("Annual Inspection", nil),
		})
	}
	return alerts
}

func dueByAge(ageMonths, intervalMonths int) bool {
	return ageMonths > 0 && ageMonths%intervalMonths == 0
}

func dueByOdometer(odometer, intervalKm, bandKm float64) bool {
	return odometer > 0 && math.Mod(odometer, intervalKm) < bandKm
}

// missingDefaultAlerts applies the default-schedule heuristics to the core
// service types absent from the history, so history-derived alerts and
// gap-filling defaults coexist without duplicating a type.
func missingDefaultAlerts(vehicle models.Vehicle, history []models.Maintenance, now time.Time) []models.MaintenanceAlert {
	var hasOil, hasTire, hasInspection bool
	for _, m := range history {
		t := strings.ToLower(m.ServiceType)
		if strings.Contains(t, "oil") {
			hasOil = true
		}
		if strings.Contains(t, "tire") && strings.Contains(t, "rotat") {
			hasTire = true
		}
		if strings.Contains(t, "inspection") || strings.Contains(t, "annual") {
			hasInspection = true
		}
	}

	var alerts []models.MaintenanceAlert
	for _, candidate := range defaultSchedule(vehicle, now) {
		t := strings.ToLower(candidate.ServiceType)
		switch {
		case hasOil && strings.Contains(t, "oil"):
		case hasTire && strings.Contains(t, "tire"):
		case hasInspection && strings.Contains(t, "inspection"):
		default:
			alerts = append(alerts, candidate)
		}
	}
	return alerts
}
