package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Maintenance represents a vehicle maintenance record. ServiceType is free
// text and doubles as the grouping key for maintenance predictions.
type Maintenance struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID       string             `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType     string             `json:"service_type" bson:"service_type"` // e.g. "Oil Change", "Tire Rotation", "Brake Service"
	Description     string             `json:"description" bson:"description"`
	ServiceDate     time.Time          `json:"service_date" bson:"service_date"`
	NextServiceDate *time.Time         `json:"next_service_date,omitempty" bson:"next_service_date,omitempty"`
	Odometer        float64            `json:"odometer" bson:"odometer"` // in kilometers
	Cost            float64            `json:"cost" bson:"cost"`         // in USD
	ServiceLocation string             `json:"service_location" bson:"service_location"`
	Technician      string             `json:"technician" bson:"technician"`
	Notes           string             `json:"notes" bson:"notes"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}
