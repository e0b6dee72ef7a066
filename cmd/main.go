package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukarim/fleet-analytics/internal/analytics"
	"github.com/ukarim/fleet-analytics/internal/db"
	"github.com/ukarim/fleet-analytics/internal/handlers"
)

func main() {
	_ = godotenv.Load()
	configureLogging()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	database := client.Database(envOr("MONGO_DB", "fleet"))

	store := db.NewSnapshotStore(database)
	service := analytics.NewService(store)

	analyticsHandler := handlers.NewAnalyticsHandler(service)
	recordHandler := &handlers.RecordHandler{
		Vehicles:    &db.MongoCollection{Collection: database.Collection("vehicles")},
		Trips:       &db.MongoCollection{Collection: database.Collection("trips")},
		Fuel:        &db.MongoCollection{Collection: database.Collection("fuel_records")},
		Maintenance: &db.MongoCollection{Collection: database.Collection("maintenance")},
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/vehicles", recordHandler.CreateVehicle).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}/trips", recordHandler.CreateTrip).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}/fuel", recordHandler.CreateFuelRecord).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}/maintenance", recordHandler.CreateMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{id}/analytics", analyticsHandler.VehicleAnalytics).Methods(http.MethodGet)
	api.HandleFunc("/analytics/fleet", analyticsHandler.FleetAnalytics).Methods(http.MethodGet)

	port := envOr("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.WithField("port", port).Info("fleet analytics API listening")
	log.Fatal(srv.ListenAndServe())
}

func configureLogging() {
	if level, err := log.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
