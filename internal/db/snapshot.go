package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukarim/fleet-analytics/internal/analytics"
	"github.com/ukarim/fleet-analytics/internal/models"
)

// SnapshotStore assembles fully-materialized vehicle snapshots for the
// analytics engine. It reads a vehicle plus its three child collections in
// one pass; the engine never reaches back into the database.
type SnapshotStore struct {
	Vehicles    *mongo.Collection
	Trips       *mongo.Collection
	FuelRecords *mongo.Collection
	Maintenance *mongo.Collection
}

// NewSnapshotStore wires a snapshot store over the standard collection names.
func NewSnapshotStore(database *mongo.Database) *SnapshotStore {
	return &SnapshotStore{
		Vehicles:    database.Collection("vehicles"),
		Trips:       database.Collection("trips"),
		FuelRecords: database.Collection("fuel_records"),
		Maintenance: database.Collection("maintenance"),
	}
}

// VehicleByID loads one vehicle with its trips, fuel records, and
// maintenance history. Unknown and malformed ids both resolve to
// analytics.ErrVehicleNotFound.
func (s *SnapshotStore) VehicleByID(ctx context.Context, id string) (*models.VehicleSnapshot, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", id, analytics.ErrVehicleNotFound)
	}

	var vehicle models.Vehicle
	err = s.Vehicles.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle %s: %w", id, analytics.ErrVehicleNotFound)
		}
		return nil, fmt.Errorf("find vehicle %s: %w", id, err)
	}

	return s.loadSnapshot(ctx, vehicle)
}

// VehiclesByOwner loads every vehicle the owner holds, each with its child
// collections. An owner with no vehicles yields an empty slice.
func (s *SnapshotStore) VehiclesByOwner(ctx context.Context, ownerID string) ([]models.VehicleSnapshot, error) {
	cursor, err := s.Vehicles.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("find vehicles for owner %s: %w", ownerID, err)
	}
	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles for owner %s: %w", ownerID, err)
	}

	snapshots := make([]models.VehicleSnapshot, 0, len(vehicles))
	for _, vehicle := range vehicles {
		snapshot, err := s.loadSnapshot(ctx, vehicle)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	return snapshots, nil
}

func (s *SnapshotStore) loadSnapshot(ctx context.Context, vehicle models.Vehicle) (*models.VehicleSnapshot, error) {
	vehicleID := vehicle.ID.Hex()
	filter := bson.M{"vehicle_id": vehicleID}
	snapshot := &models.VehicleSnapshot{Vehicle: vehicle}

	cursor, err := s.Trips.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find trips for vehicle %s: %w", vehicleID, err)
	}
	if err := cursor.All(ctx, &snapshot.Trips); err != nil {
		return nil, fmt.Errorf("decode trips for vehicle %s: %w", vehicleID, err)
	}

	cursor, err = s.FuelRecords.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find fuel records for vehicle %s: %w", vehicleID, err)
	}
	if err := cursor.All(ctx, &snapshot.FuelRecords); err != nil {
		return nil, fmt.Errorf("decode fuel records for vehicle %s: %w", vehicleID, err)
	}

	cursor, err = s.Maintenance.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "service_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find maintenance for vehicle %s: %w", vehicleID, err)
	}
	if err := cursor.All(ctx, &snapshot.Maintenance); err != nil {
		return nil, fmt.Errorf("decode maintenance for vehicle %s: %w", vehicleID, err)
	}

	return snapshot, nil
}
