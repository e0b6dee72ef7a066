package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukarim/fleet-analytics/internal/models"
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicles(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (VehicleCursor, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicleOdometer(ctx context.Context, id string, odometer float64) error
	DeleteVehicle(ctx context.Context, id string) error
}

// VehicleCursor defines the interface for vehicle cursor operations.
type VehicleCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// TripCollection defines the interface for trip data operations.
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) error
	FindTrips(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (TripCursor, error)
}

// TripCursor defines the interface for trip cursor operations.
type TripCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// FuelCollection defines the interface for fuel record operations.
type FuelCollection interface {
	InsertFuelRecord(ctx context.Context, record models.FuelRecord) error
	FindFuelRecords(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (FuelCursor, error)
}

// FuelCursor defines the interface for fuel record cursor operations.
type FuelCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// MaintenanceCollection defines the interface for maintenance record operations.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, maintenance models.Maintenance) error
	FindMaintenance(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (MaintenanceCursor, error)
}

// MaintenanceCursor defines the interface for maintenance cursor operations.
type MaintenanceCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
