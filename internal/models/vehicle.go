package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID         string             `bson:"owner_id" json:"owner_id"`
	Make            string             `bson:"make" json:"make"`
	Model           string             `bson:"model" json:"model"`
	Year            int                `bson:"year" json:"year"`
	Odometer        float64            `bson:"odometer" json:"odometer"` // in kilometers, non-decreasing
	CurrentLocation Location           `bson:"current_location" json:"current_location"`
	Status          string             `bson:"status" json:"status"` // "active" or "inactive"
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// Label renders the vehicle for display, e.g. "Toyota Camry (2022)".
func (v Vehicle) Label() string {
	return fmt.Sprintf("%s %s (%d)", v.Make, v.Model, v.Year)
}
