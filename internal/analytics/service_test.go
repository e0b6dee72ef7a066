package analytics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukarim/fleet-analytics/internal/models"
)

// MockVehicleSource is a mock implementation of VehicleSource.
type MockVehicleSource struct {
	mock.Mock
}

func (m *MockVehicleSource) VehicleByID(ctx context.Context, id string) (*models.VehicleSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleSnapshot), args.Error(1)
}

func (m *MockVehicleSource) VehiclesByOwner(ctx context.Context, ownerID string) ([]models.VehicleSnapshot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleSnapshot), args.Error(1)
}

var serviceNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

func testService(source VehicleSource) *Service {
	s := NewService(source)
	s.now = func() time.Time { return serviceNow }
	return s
}

// testVehicle's age and odometer sit away from every default-schedule
// periodic mark, so predictions come from history alone.
func testVehicle() models.Vehicle {
	return models.Vehicle{
		ID:       primitive.NewObjectID(),
		OwnerID:  "owner-1",
		Make:     "Toyota",
		Model:    "Camry",
		Year:     2022,
		Odometer: 13000,
	}
}

func TestVehicleAnalytics_NotFound(t *testing.T) {
	source := new(MockVehicleSource)
	source.On("VehicleByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("vehicle missing: %w", ErrVehicleNotFound))

	result, err := testService(source).VehicleAnalytics(context.Background(), "missing", nil, nil)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrVehicleNotFound))
}

func TestVehicleAnalytics_FullComputation(t *testing.T) {
	vehicle := testVehicle()
	brakeDue := serviceNow.AddDate(0, 1, 0)
	snapshot := &models.VehicleSnapshot{
		Vehicle: vehicle,
		Trips: []models.Trip{
			{StartTime: serviceNow.AddDate(0, -3, 0), EndTime: serviceNow.AddDate(0, -3, 0).Add(2 * time.Hour), Distance: 100},
			{StartTime: serviceNow.AddDate(0, -2, 0), EndTime: serviceNow.AddDate(0, -2, 0).Add(3 * time.Hour), Distance: 150},
			// Outside the default trailing-year window.
			{StartTime: serviceNow.AddDate(-2, 0, 0), EndTime: serviceNow.AddDate(-2, 0, 0).Add(time.Hour), Distance: 500},
		},
		FuelRecords: []models.FuelRecord{
			{Date: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), Odometer: 10000, Liters: 10, FullTank: true, TotalCost: 20},
			{Date: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), Odometer: 10300, Liters: 24, FullTank: true, TotalCost: 48},
			{Date: time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), Odometer: 10650, Liters: 28, FullTank: true, TotalCost: 56},
		},
		Maintenance: []models.Maintenance{
			{ServiceType: "Oil Change", ServiceDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Odometer: 10200, Cost: 40},
			// Old record outside the window; still feeds predictions.
			{ServiceType: "Brake Service", ServiceDate: serviceNow.AddDate(-2, 0, 0), Odometer: 4000, Cost: 130, NextServiceDate: &brakeDue},
		},
	}

	source := new(MockVehicleSource)
	source.On("VehicleByID", mock.Anything, vehicle.ID.Hex()).Return(snapshot, nil)

	result, err := testService(source).VehicleAnalytics(context.Background(), vehicle.ID.Hex(), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, vehicle.ID.Hex(), result.VehicleID)
	assert.Equal(t, 250.0, result.Mileage)
	assert.Equal(t, 2, result.TripCount)
	assert.Equal(t, 124.0, result.FuelCost)
	assert.Equal(t, 40.0, result.MaintenanceCost)
	assert.Equal(t, 164.0, result.TotalCost)
	assert.InDelta(t, 164.0/250.0, result.CostPerKm, 1e-9)
	assert.Equal(t, 8.0, result.FuelEfficiency)

	assert.Equal(t, map[string]float64{"fuel": 124, "maintenance": 40, "other": 0}, result.CostByCategory)

	assert.Equal(t, []models.MonthlyCost{
		{Month: "2026-01", MaintenanceCost: 40, TotalCost: 40},
		{Month: "2026-02", FuelCost: 124, TotalCost: 124},
	}, result.CostByMonth)

	assert.Equal(t, []models.EfficiencyTrendPoint{{Month: "2026-02", LitersPer100Km: 8.0}}, result.EfficiencyTrend)

	// Predictions see the full history: the oil change projects a standard
	// 3-month interval, the out-of-window brake record contributes its
	// explicit due date.
	assert.Equal(t, []string{"Oil Change", "Brake Service"}, alertTypes(result.UpcomingMaintenance))
	assert.Equal(t, brakeDue, result.UpcomingMaintenance[1].DueDate)
}

func TestVehicleAnalytics_ExplicitWindow(t *testing.T) {
	vehicle := testVehicle()
	snapshot := &models.VehicleSnapshot{
		Vehicle: vehicle,
		FuelRecords: []models.FuelRecord{
			{Date: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), TotalCost: 50},
			{Date: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), TotalCost: 70},
		},
	}
	source := new(MockVehicleSource)
	source.On("VehicleByID", mock.Anything, vehicle.ID.Hex()).Return(snapshot, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	result, err := testService(source).VehicleAnalytics(context.Background(), vehicle.ID.Hex(), &start, &end)

	assert.NoError(t, err)
	assert.Equal(t, 70.0, result.FuelCost)
}

func TestFleetAnalytics_EmptyFleet(t *testing.T) {
	source := new(MockVehicleSource)
	source.On("VehiclesByOwner", mock.Anything, "new-user").Return([]models.VehicleSnapshot{}, nil)

	result, err := testService(source).FleetAnalytics(context.Background(), "new-user", nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.VehicleCount)
	assert.Equal(t, 0.0, result.TotalCost)
	assert.Equal(t, "Unknown", result.MostUsedVehicle.Label)
	assert.Equal(t, "", result.MostUsedVehicle.ID)
	assert.Equal(t, "Unknown", result.MostEfficientVehicle.Label)
	assert.Empty(t, result.CostTrend)
	assert.Empty(t, result.UpcomingMaintenance)
}

func TestFleetAnalytics_SelectionsAndAverages(t *testing.T) {
	busy := testVehicle()
	sparse := testVehicle() // same make/model/year: label collision on purpose

	snapshots := []models.VehicleSnapshot{
		{
			Vehicle: busy,
			Trips: []models.Trip{
				tripAt(serviceNow.AddDate(0, -1, 0), 50),
				tripAt(serviceNow.AddDate(0, -2, 0), 50),
				tripAt(serviceNow.AddDate(0, -3, 0), 50),
			},
			FuelRecords: []models.FuelRecord{
				{Date: serviceNow.AddDate(0, -2, 0), Odometer: 10000, Liters: 10, FullTank: true, TotalCost: 20},
				{Date: serviceNow.AddDate(0, -1, 0), Odometer: 10300, Liters: 24, FullTank: true, TotalCost: 48},
				{Date: serviceNow.AddDate(0, 0, -7), Odometer: 10650, Liters: 28, FullTank: true, TotalCost: 56},
			},
		},
		{
			Vehicle: sparse,
			Trips:   []models.Trip{tripAt(serviceNow.AddDate(0, -1, 0), 400)},
			// One record: insufficient for efficiency, excluded from the average.
			FuelRecords: []models.FuelRecord{
				{Date: serviceNow.AddDate(0, -1, 0), Odometer: 20000, Liters: 40, TotalCost: 30},
			},
		},
	}

	source := new(MockVehicleSource)
	source.On("VehiclesByOwner", mock.Anything, "owner-1").Return(snapshots, nil)

	result, err := testService(source).FleetAnalytics(context.Background(), "owner-1", nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.VehicleCount)
	assert.Equal(t, 550.0, result.TotalMileage)
	assert.Equal(t, 154.0, result.TotalCost)
	assert.InDelta(t, 154.0/550.0, result.AverageCostPerKm, 1e-9)

	// Only the vehicle with >=2 fuel records and a positive rate counts.
	assert.Equal(t, 8.0, result.AverageEfficiency)

	assert.Equal(t, busy.ID.Hex(), result.MostUsedVehicle.ID)
	assert.Equal(t, busy.ID.Hex(), result.MostEfficientVehicle.ID)
	assert.Equal(t, "Toyota Camry (2022)", result.MostUsedVehicle.Label)

	// Colliding labels stay distinct entries instead of merging costs.
	assert.Len(t, result.CostPerVehicle, 2)
	assert.Equal(t, 124.0, result.CostPerVehicle["Toyota Camry (2022)"])
	assert.Equal(t, 30.0, result.CostPerVehicle[fmt.Sprintf("Toyota Camry (2022) [%s]", sparse.ID.Hex())])
}

func TestFleetAnalytics_NoQualifyingVehicles(t *testing.T) {
	idle := testVehicle()
	snapshots := []models.VehicleSnapshot{{Vehicle: idle}}

	source := new(MockVehicleSource)
	source.On("VehiclesByOwner", mock.Anything, "owner-1").Return(snapshots, nil)

	result, err := testService(source).FleetAnalytics(context.Background(), "owner-1", nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.VehicleCount)
	assert.Equal(t, models.VehicleRef{ID: "", Label: "Unknown"}, result.MostUsedVehicle)
	assert.Equal(t, models.VehicleRef{ID: "", Label: "Unknown"}, result.MostEfficientVehicle)
}

func TestFleetAnalytics_MaintenanceTaggedWithVehicleID(t *testing.T) {
	vehicle := testVehicle()
	due := serviceNow.AddDate(0, 1, 0)
	snapshots := []models.VehicleSnapshot{{
		Vehicle: vehicle,
		Maintenance: []models.Maintenance{
			{ServiceType: "Brake Service", ServiceDate: serviceNow.AddDate(0, -4, 0), Cost: 140, NextServiceDate: &due},
		},
	}}

	source := new(MockVehicleSource)
	source.On("VehiclesByOwner", mock.Anything, "owner-1").Return(snapshots, nil)

	result, err := testService(source).FleetAnalytics(context.Background(), "owner-1", nil, nil)

	assert.NoError(t, err)
	assert.Len(t, result.UpcomingMaintenance, 1)
	assert.Equal(t, vehicle.ID.Hex(), result.UpcomingMaintenance[0].VehicleID)
}

func tripAt(start time.Time, distance float64) models.Trip {
	return models.Trip{StartTime: start, EndTime: start.Add(time.Hour), Distance: distance}
}
