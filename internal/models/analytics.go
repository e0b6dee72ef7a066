package models

import "time"

// VehicleSnapshot is a fully-materialized read of one vehicle and its child
// record collections, assembled by the persistence layer and handed to the
// analytics engine by value.
type VehicleSnapshot struct {
	Vehicle     Vehicle       `json:"vehicle"`
	Trips       []Trip        `json:"trips"`
	FuelRecords []FuelRecord  `json:"fuel_records"`
	Maintenance []Maintenance `json:"maintenance"`
}

// MaintenanceAlert is an upcoming-maintenance prediction for one service type.
// VehicleID is set only on fleet-wide results.
type MaintenanceAlert struct {
	VehicleID     string    `json:"vehicle_id,omitempty"`
	ServiceType   string    `json:"service_type"`
	DueDate       time.Time `json:"due_date"`
	EstimatedCost float64   `json:"estimated_cost"` // in USD
}

// EfficiencyTrendPoint is the average fuel consumption for one calendar month.
type EfficiencyTrendPoint struct {
	Month          string  `json:"month"` // "YYYY-MM"
	LitersPer100Km float64 `json:"liters_per_100km"`
}

// MonthlyCost is the cost total for one calendar month, split by source.
type MonthlyCost struct {
	Month           string  `json:"month"` // "YYYY-MM"
	FuelCost        float64 `json:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	TotalCost       float64 `json:"total_cost"`
}

// VehicleRef identifies a vehicle in a fleet-level result.
type VehicleRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// VehicleAnalytics is the per-vehicle analytics response.
type VehicleAnalytics struct {
	VehicleID           string                 `json:"vehicle_id"`
	TotalCost           float64                `json:"total_cost"`
	Mileage             float64                `json:"mileage"` // in kilometers
	CostPerKm           float64                `json:"cost_per_km"`
	TripCount           int                    `json:"trip_count"`
	FuelEfficiency      float64                `json:"fuel_efficiency"` // liters per 100 km
	MaintenanceCost     float64                `json:"maintenance_cost"`
	FuelCost            float64                `json:"fuel_cost"`
	UpcomingMaintenance []MaintenanceAlert     `json:"upcoming_maintenance"`
	EfficiencyTrend     []EfficiencyTrendPoint `json:"efficiency_trend"`
	CostByCategory      map[string]float64     `json:"cost_by_category"`
	CostByMonth         []MonthlyCost          `json:"cost_by_month"`
}

// FleetAnalytics is the fleet-wide analytics response for one owner.
type FleetAnalytics struct {
	VehicleCount         int                `json:"vehicle_count"`
	TotalMileage         float64            `json:"total_mileage"` // in kilometers
	TotalCost            float64            `json:"total_cost"`
	CostPerVehicle       map[string]float64 `json:"cost_per_vehicle"` // keyed by vehicle label
	AverageCostPerKm     float64            `json:"average_cost_per_km"`
	AverageEfficiency    float64            `json:"average_efficiency"` // liters per 100 km
	MostUsedVehicle      VehicleRef         `json:"most_used_vehicle"`
	MostEfficientVehicle VehicleRef         `json:"most_efficient_vehicle"`
	CostTrend            []MonthlyCost      `json:"cost_trend"`
	UpcomingMaintenance  []MaintenanceAlert `json:"upcoming_maintenance"`
}
