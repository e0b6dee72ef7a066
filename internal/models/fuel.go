package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelRecord represents a single fill-up at a station.
type FuelRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID     string             `json:"vehicle_id" bson:"vehicle_id"`
	Date          time.Time          `json:"date" bson:"date"`
	Liters        float64            `json:"liters" bson:"liters"`
	PricePerLiter float64            `json:"price_per_liter" bson:"price_per_liter"` // in USD
	TotalCost     float64            `json:"total_cost" bson:"total_cost"`           // in USD
	Odometer      float64            `json:"odometer" bson:"odometer"`               // in kilometers, at fill time
	FullTank      bool               `json:"full_tank" bson:"full_tank"`
	Station       string             `json:"station" bson:"station"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
