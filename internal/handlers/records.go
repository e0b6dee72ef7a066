package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ukarim/fleet-analytics/internal/analytics"
	"github.com/ukarim/fleet-analytics/internal/db"
	"github.com/ukarim/fleet-analytics/internal/models"
)

// RecordHandler handles creation of vehicles and their child records.
type RecordHandler struct {
	Vehicles    db.VehicleCollection
	Trips       db.TripCollection
	Fuel        db.FuelCollection
	Maintenance db.MaintenanceCollection
}

// CreateVehicle handles POST /api/vehicles.
func (h *RecordHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		respondError(w, http.StatusBadRequest, "make and model are required")
		return
	}

	id, err := h.Vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		log.WithError(err).Error("failed to insert vehicle")
		respondError(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// CreateTrip handles POST /api/vehicles/{id}/trips.
func (h *RecordHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := h.resolveVehicle(w, r)
	if !ok {
		return
	}

	var trip models.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if trip.Distance < 0 {
		respondError(w, http.StatusBadRequest, "distance must be non-negative")
		return
	}
	if !trip.EndTime.After(trip.StartTime) {
		respondError(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	trip.VehicleID = vehicleID

	if err := h.Trips.InsertTrip(r.Context(), trip); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("failed to insert trip")
		respondError(w, http.StatusInternalServerError, "failed to create trip")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// CreateFuelRecord handles POST /api/vehicles/{id}/fuel.
func (h *RecordHandler) CreateFuelRecord(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := h.resolveVehicle(w, r)
	if !ok {
		return
	}

	var record models.FuelRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if record.Liters <= 0 {
		respondError(w, http.StatusBadRequest, "liters must be positive")
		return
	}
	record.VehicleID = vehicleID

	if err := h.Fuel.InsertFuelRecord(r.Context(), record); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("failed to insert fuel record")
		respondError(w, http.StatusInternalServerError, "failed to create fuel record")
		return
	}
	// A fill-up carries the freshest odometer reading we have.
	if err := h.Vehicles.UpdateVehicleOdometer(r.Context(), vehicleID, record.Odometer); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Warn("failed to advance odometer")
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// CreateMaintenance handles POST /api/vehicles/{id}/maintenance.
func (h *RecordHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := h.resolveVehicle(w, r)
	if !ok {
		return
	}

	var maintenance models.Maintenance
	if err := json.NewDecoder(r.Body).Decode(&maintenance); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if maintenance.ServiceType == "" {
		respondError(w, http.StatusBadRequest, "service_type is required")
		return
	}
	maintenance.VehicleID = vehicleID

	if err := h.Maintenance.InsertMaintenance(r.Context(), maintenance); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("failed to insert maintenance")
		respondError(w, http.StatusInternalServerError, "failed to create maintenance record")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// resolveVehicle checks that the path's vehicle id exists before a child
// record is attached to it.
func (h *RecordHandler) resolveVehicle(w http.ResponseWriter, r *http.Request) (string, bool) {
	vehicleID := mux.Vars(r)["id"]
	if _, err := h.Vehicles.FindVehicleByID(r.Context(), vehicleID); err != nil {
		if errors.Is(err, analytics.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "vehicle not found")
		} else {
			respondError(w, http.StatusBadRequest, "invalid vehicle id")
		}
		return "", false
	}
	return vehicleID, true
}
