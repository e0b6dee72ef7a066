package main

import (
	"testing"
)

func TestFuelHistory_OdometerIsMonotone(t *testing.T) {
	records := fuelHistory(6, 20000)
	if len(records) < 12 {
		t.Fatalf("expected at least 2 fill-ups per month, got %d records", len(records))
	}
	last := 20000.0
	for i, record := range records {
		if record.Odometer <= last {
			t.Fatalf("odometer not increasing at record %d: %v <= %v", i, record.Odometer, last)
		}
		last = record.Odometer
		if record.Liters <= 0 {
			t.Errorf("record %d has non-positive liters", i)
		}
		if record.TotalCost <= 0 {
			t.Errorf("record %d has non-positive cost", i)
		}
	}
}

func TestMaintenanceHistory_AnchorsToFuelOdometer(t *testing.T) {
	fuel := fuelHistory(12, 10000)
	records := maintenanceHistory(12, fuel)
	if len(records) == 0 {
		t.Fatal("expected maintenance records over a 12 month span")
	}
	maxOdometer := fuel[len(fuel)-1].Odometer
	for i, record := range records {
		if record.ServiceType == "" {
			t.Errorf("record %d missing service type", i)
		}
		if record.Odometer > maxOdometer {
			t.Errorf("record %d odometer %v exceeds fuel history max %v", i, record.Odometer, maxOdometer)
		}
	}
}

func TestMaintenanceHistory_IncludesAnnualInspection(t *testing.T) {
	fuel := fuelHistory(12, 10000)
	records := maintenanceHistory(12, fuel)
	found := false
	for _, record := range records {
		if record.ServiceType == "Annual Inspection" {
			found = true
		}
	}
	if !found {
		t.Error("expected an annual inspection in a 12 month history")
	}
}

func TestTripHistory_TimesAreOrdered(t *testing.T) {
	trips := tripHistory(3)
	if len(trips) < 9 {
		t.Fatalf("expected at least 3 trips per month, got %d", len(trips))
	}
	for i, trip := range trips {
		if !trip.EndTime.After(trip.StartTime) {
			t.Errorf("trip %d ends before it starts", i)
		}
		if trip.Distance <= 0 {
			t.Errorf("trip %d has non-positive distance", i)
		}
	}
}
