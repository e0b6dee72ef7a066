// Command seeder back-fills a synthetic fleet through the API: vehicles with
// monotone odometer fuel histories, periodic maintenance, and trips. It
// exists so the analytics endpoints have realistic data to chew on.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Location mirrors the API's location payload.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Vehicle is the create-vehicle request payload.
type Vehicle struct {
	OwnerID  string  `json:"owner_id"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Year     int     `json:"year"`
	Odometer float64 `json:"odometer"`
	Status   string  `json:"status"`
}

// FuelRecord is the create-fuel-record request payload.
type FuelRecord struct {
	Date          time.Time `json:"date"`
	Liters        float64   `json:"liters"`
	PricePerLiter float64   `json:"price_per_liter"`
	TotalCost     float64   `json:"total_cost"`
	Odometer      float64   `json:"odometer"`
	FullTank      bool      `json:"full_tank"`
	Station       string    `json:"station"`
}

// Maintenance is the create-maintenance request payload.
type Maintenance struct {
	ServiceType     string    `json:"service_type"`
	ServiceDate     time.Time `json:"service_date"`
	Odometer        float64   `json:"odometer"`
	Cost            float64   `json:"cost"`
	ServiceLocation string    `json:"service_location"`
}

// Trip is the create-trip request payload.
type Trip struct {
	StartLocation Location  `json:"start_location"`
	EndLocation   Location  `json:"end_location"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Distance      float64   `json:"distance"`
	Purpose       string    `json:"purpose"`
	Status        string    `json:"status"`
}

var makes = []string{"Ford", "Chevrolet", "Toyota", "Honda", "BMW", "Volkswagen"}
var modelsByMake = map[string][]string{
	"Ford":       {"F-150", "Focus", "Explorer"},
	"Chevrolet":  {"Silverado", "Malibu"},
	"Toyota":     {"Camry", "Corolla", "RAV4"},
	"Honda":      {"Civic", "CR-V"},
	"BMW":        {"X5", "320i"},
	"Volkswagen": {"Golf", "Passat"},
}
var stations = []string{"Shell", "BP", "Esso", "Total", "Circle K"}

func postJSON(apiURL, path string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Post(apiURL+path, "application/json", bytes.NewBuffer(data))
}

func createVehicle(apiURL, ownerID string) (string, error) {
	make := makes[rand.Intn(len(makes))]
	model := modelsByMake[make][rand.Intn(len(modelsByMake[make]))]
	vehicle := Vehicle{
		OwnerID:  ownerID,
		Make:     make,
		Model:    model,
		Year:     2018 + rand.Intn(7), // 2018-2024
		Odometer: 0,
		Status:   "active",
	}

	resp, err := postJSON(apiURL, "/vehicles", vehicle)
	if err != nil {
		return "", fmt.Errorf("create vehicle: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	id := result["id"]
	if id == "" {
		return "", fmt.Errorf("missing vehicle id in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"make":       make,
		"model":      model,
	}).Info("Created vehicle")
	return id, nil
}

// fuelHistory generates months of fill-ups with a strictly increasing
// odometer, ending at time.Now().
func fuelHistory(months int, startOdometer float64) []FuelRecord {
	var records []FuelRecord
	odometer := startOdometer
	now := time.Now()

	for m := months; m >= 1; m-- {
		monthStart := now.AddDate(0, -m, 0)
		fills := 2 + rand.Intn(3) // 2-4 fill-ups per month
		for f := 0; f < fills; f++ {
			odometer += 250 + rand.Float64()*450
			liters := 35 + rand.Float64()*20
			price := 1.6 + rand.Float64()*0.5
			records = append(records, FuelRecord{
				Date:          monthStart.AddDate(0, 0, f*(28/fills)+rand.Intn(3)),
				Liters:        liters,
				PricePerLiter: price,
				TotalCost:     liters * price,
				Odometer:      odometer,
				FullTank:      rand.Float64() < 0.85,
				Station:       stations[rand.Intn(len(stations))],
			})
		}
	}
	return records
}

// maintenanceHistory generates periodic services anchored to the fuel
// history's odometer progression.
func maintenanceHistory(months int, fuel []FuelRecord) []Maintenance {
	var records []Maintenance
	now := time.Now()

	odometerAt := func(t time.Time) float64 {
		var last float64
		for _, f := range fuel {
			if f.Date.After(t) {
				break
			}
			last = f.Odometer
		}
		return last
	}

	for m := months; m >= 1; m-- {
		date := now.AddDate(0, -m, rand.Intn(10))
		switch {
		case m%12 == 0:
			records = append(records, Maintenance{
				ServiceType: "Annual Inspection", ServiceDate: date,
				Odometer: odometerAt(date), Cost: 80 + rand.Float64()*30,
				ServiceLocation: "Main Street Garage",
			})
		case m%6 == 0:
			records = append(records, Maintenance{
				ServiceType: "Tire Rotation", ServiceDate: date,
				Odometer: odometerAt(date), Cost: 20 + rand.Float64()*15,
				ServiceLocation: "QuickFit",
			})
		case m%3 == 0:
			records = append(records, Maintenance{
				ServiceType: "Oil Change", ServiceDate: date,
				Odometer: odometerAt(date), Cost: 40 + rand.Float64()*20,
				ServiceLocation: "QuickFit",
			})
		}
	}
	return records
}

// tripHistory generates a handful of completed trips per month.
func tripHistory(months int) []Trip {
	var trips []Trip
	now := time.Now()
	base := Location{Lat: 51.5074, Lon: -0.1278}

	for m := months; m >= 1; m-- {
		count := 3 + rand.Intn(5)
		for i := 0; i < count; i++ {
			start := now.AddDate(0, -m, rand.Intn(25))
			hours := 0.5 + rand.Float64()*3
			trips = append(trips, Trip{
				StartLocation: base,
				EndLocation:   Location{Lat: base.Lat + rand.Float64()*0.5, Lon: base.Lon + rand.Float64()*0.5},
				StartTime:     start,
				EndTime:       start.Add(time.Duration(hours * float64(time.Hour))),
				Distance:      20 + rand.Float64()*120,
				Purpose:       []string{"business", "personal", "delivery"}[rand.Intn(3)],
				Status:        "completed",
			})
		}
	}
	return trips
}

func seedVehicle(apiURL, vehicleID string, months int) error {
	fuel := fuelHistory(months, 10000+rand.Float64()*50000)
	for _, record := range fuel {
		resp, err := postJSON(apiURL, "/vehicles/"+vehicleID+"/fuel", record)
		if err != nil {
			return fmt.Errorf("post fuel record: %w", err)
		}
		resp.Body.Close()
	}
	for _, record := range maintenanceHistory(months, fuel) {
		resp, err := postJSON(apiURL, "/vehicles/"+vehicleID+"/maintenance", record)
		if err != nil {
			return fmt.Errorf("post maintenance record: %w", err)
		}
		resp.Body.Close()
	}
	for _, trip := range tripHistory(months) {
		resp, err := postJSON(apiURL, "/vehicles/"+vehicleID+"/trips", trip)
		if err != nil {
			return fmt.Errorf("post trip: %w", err)
		}
		resp.Body.Close()
	}
	return nil
}

func main() {
	fleetSize := 5
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			fleetSize = n
		}
	}
	months := 12
	if val := os.Getenv("SEED_MONTHS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			months = n
		}
	}
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	ownerID := os.Getenv("SEED_OWNER_ID")
	if ownerID == "" {
		ownerID = "demo-owner"
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"months":     months,
		"api_url":    apiURL,
		"owner_id":   ownerID,
	}).Info("Starting fleet seeding")

	seeded := 0
	for i := 0; i < fleetSize; i++ {
		vehicleID, err := createVehicle(apiURL, ownerID)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		if err := seedVehicle(apiURL, vehicleID, months); err != nil {
			log.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to seed vehicle history")
			continue
		}
		seeded++
	}

	log.WithField("seeded_vehicles", seeded).Info("Fleet seeding completed")
	if seeded == 0 {
		log.Error("No vehicles seeded. Ensure the API is reachable.")
		os.Exit(1)
	}
}
