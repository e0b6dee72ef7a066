package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ukarim/fleet-analytics/internal/models"
)

// ErrVehicleNotFound is returned when a vehicle id does not resolve. It is
// the engine's only distinguished failure; every other sparse-data condition
// resolves to a zero, empty, or sentinel value.
var ErrVehicleNotFound = errors.New("vehicle not found")

// unknownVehicle is the sentinel returned when no vehicle qualifies for a
// fleet-level selection (most used, most efficient).
var unknownVehicle = models.VehicleRef{ID: "", Label: "Unknown"}

// VehicleSource supplies fully-materialized vehicle snapshots. Implementations
// must return ErrVehicleNotFound (possibly wrapped) for unknown ids.
type VehicleSource interface {
	VehicleByID(ctx context.Context, id string) (*models.VehicleSnapshot, error)
	VehiclesByOwner(ctx context.Context, ownerID string) ([]models.VehicleSnapshot, error)
}

// Service computes vehicle and fleet analytics over snapshots. It is
// stateless between calls; each invocation re-derives everything from the
// snapshot it reads.
type Service struct {
	source VehicleSource
	now    func() time.Time
}

// NewService creates an analytics service over the given snapshot source.
func NewService(source VehicleSource) *Service {
	return &Service{source: source, now: time.Now}
}

// window resolves the requested date bounds, defaulting to the trailing year.
func (s *Service) window(start, end *time.Time) (time.Time, time.Time) {
	now := s.now()
	from, to := now.AddDate(-1, 0, 0), now
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	return from, to
}

// VehicleAnalytics computes analytics for one vehicle over the given window.
// Cost, mileage, efficiency, and the monthly series are computed from the
// windowed records; maintenance predictions always see the entire history.
func (s *Service) VehicleAnalytics(ctx context.Context, vehicleID string, start, end *time.Time) (*models.VehicleAnalytics, error) {
	snapshot, err := s.source.VehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("load vehicle %s: %w", vehicleID, err)
	}

	from, to := s.window(start, end)
	trips := tripsInWindow(snapshot.Trips, from, to)
	fuel := fuelInWindow(snapshot.FuelRecords, from, to)
	maintenance := maintenanceInWindow(snapshot.Maintenance, from, to)

	var maintenanceCost, fuelCost float64
	for _, m := range maintenance {
		maintenanceCost += m.Cost
	}
	for _, f := range fuel {
		fuelCost += f.TotalCost
	}
	totalCost := maintenanceCost + fuelCost

	mileage := MileageForPeriod(trips, fuel)
	var costPerKm float64
	if mileage > 0 {
		costPerKm = totalCost / mileage
	}

	return &models.VehicleAnalytics{
		VehicleID:           snapshot.Vehicle.ID.Hex(),
		TotalCost:           totalCost,
		Mileage:             mileage,
		CostPerKm:           costPerKm,
		TripCount:           len(trips),
		FuelEfficiency:      AverageFuelEfficiency(fuel),
		MaintenanceCost:     maintenanceCost,
		FuelCost:            fuelCost,
		UpcomingMaintenance: UpcomingMaintenance(snapshot.Vehicle, snapshot.Maintenance, s.now()),
		EfficiencyTrend:     FuelEfficiencyTrend(fuel),
		CostByCategory: map[string]float64{
			"fuel":        fuelCost,
			"maintenance": maintenanceCost,
			"other":       0, // reserved: insurance, registration, tolls
		},
		CostByMonth: CostByMonth(maintenance, fuel),
	}, nil
}

// FleetAnalytics computes fleet-wide analytics across every vehicle the
// owner holds. An empty fleet is a valid state and yields a zero-valued
// result, not an error.
func (s *Service) FleetAnalytics(ctx context.Context, ownerID string, start, end *time.Time) (*models.FleetAnalytics, error) {
	snapshots, err := s.source.VehiclesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load fleet for owner %s: %w", ownerID, err)
	}

	result := &models.FleetAnalytics{
		CostPerVehicle:       map[string]float64{},
		MostUsedVehicle:      unknownVehicle,
		MostEfficientVehicle: unknownVehicle,
		CostTrend:            []models.MonthlyCost{},
		UpcomingMaintenance:  []models.MaintenanceAlert{},
	}
	if len(snapshots) == 0 {
		return result, nil
	}

	from, to := s.window(start, end)
	now := s.now()

	var allFuel []models.FuelRecord
	var allMaintenance []models.Maintenance
	var efficiencySum float64
	var efficiencyCount int
	var bestTripCount int
	var bestEfficiency float64

	for _, snap := range snapshots {
		trips := tripsInWindow(snap.Trips, from, to)
		fuel := fuelInWindow(snap.FuelRecords, from, to)
		maintenance := maintenanceInWindow(snap.Maintenance, from, to)

		var vehicleCost float64
		for _, m := range maintenance {
			vehicleCost += m.Cost
		}
		for _, f := range fuel {
			vehicleCost += f.TotalCost
		}

		ref := models.VehicleRef{ID: snap.Vehicle.ID.Hex(), Label: snap.Vehicle.Label()}

		result.VehicleCount++
		result.TotalMileage += MileageForPeriod(trips, fuel)
		result.TotalCost += vehicleCost

		// Two vehicles can share "Make Model (Year)"; disambiguate instead
		// of silently merging their costs.
		label := ref.Label
		if _, taken := result.CostPerVehicle[label]; taken {
			label = fmt.Sprintf("%s [%s]", label, ref.ID)
		}
		result.CostPerVehicle[label] = vehicleCost

		if len(trips) > bestTripCount {
			bestTripCount = len(trips)
			result.MostUsedVehicle = ref
		}

		if len(fuel) >= 2 {
			if eff := AverageFuelEfficiency(fuel); eff > 0 {
				efficiencySum += eff
				efficiencyCount++
				if eff > bestEfficiency {
					bestEfficiency = eff
					result.MostEfficientVehicle = ref
				}
			}
		}

		allFuel = append(allFuel, fuel...)
		allMaintenance = append(allMaintenance, maintenance...)

		alerts := UpcomingMaintenance(snap.Vehicle, snap.Maintenance, now)
		for i := range alerts {
			alerts[i].VehicleID = ref.ID
		}
		result.UpcomingMaintenance = append(result.UpcomingMaintenance, alerts...)
	}

	if result.TotalMileage > 0 {
		result.AverageCostPerKm = result.TotalCost / result.TotalMileage
	}
	if efficiencyCount > 0 {
		result.AverageEfficiency = round1(efficiencySum / float64(efficiencyCount))
	}
	result.CostTrend = CostByMonth(allMaintenance, allFuel)
	sort.Slice(result.UpcomingMaintenance, func(i, j int) bool {
		return result.UpcomingMaintenance[i].DueDate.Before(result.UpcomingMaintenance[j].DueDate)
	})
	return result, nil
}

func tripsInWindow(trips []models.Trip, from, to time.Time) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if !t.StartTime.Before(from) && !t.EndTime.After(to) {
			out = append(out, t)
		}
	}
	return out
}

func fuelInWindow(records []models.FuelRecord, from, to time.Time) []models.FuelRecord {
	out := make([]models.FuelRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out
}

func maintenanceInWindow(records []models.Maintenance, from, to time.Time) []models.Maintenance {
	out := make([]models.Maintenance, 0, len(records))
	for _, r := range records {
		if !r.ServiceDate.Before(from) && !r.ServiceDate.After(to) {
			out = append(out, r)
		}
	}
	return out
}
