package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ukarim/fleet-analytics/internal/analytics"
)

// AnalyticsHandler exposes the vehicle and fleet analytics endpoints.
type AnalyticsHandler struct {
	Service *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

// VehicleAnalytics handles GET /api/vehicles/{id}/analytics.
func (h *AnalyticsHandler) VehicleAnalytics(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["id"]

	start, end, err := parseWindow(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.VehicleAnalytics(r.Context(), vehicleID, start, end)
	if err != nil {
		if errors.Is(err, analytics.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("vehicle analytics failed")
		respondError(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// FleetAnalytics handles GET /api/analytics/fleet?owner_id=...
func (h *AnalyticsHandler) FleetAnalytics(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		respondError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	start, end, err := parseWindow(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.FleetAnalytics(r.Context(), ownerID, start, end)
	if err != nil {
		log.WithError(err).WithField("owner_id", ownerID).Error("fleet analytics failed")
		respondError(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parseWindow reads the optional start_date/end_date query parameters.
// Missing bounds stay nil; the service applies its trailing-year default.
func parseWindow(r *http.Request) (start, end *time.Time, err error) {
	if start, err = parseDate(r.URL.Query().Get("start_date")); err != nil {
		return nil, nil, errors.New("invalid start_date")
	}
	if end, err = parseDate(r.URL.Query().Get("end_date")); err != nil {
		return nil, nil, errors.New("invalid end_date")
	}
	return start, end, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("unrecognized date format")
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
