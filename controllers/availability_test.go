package controllers_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/smilecare/dental-clinic-api/models"
)

func availabilityPath(doctor, date, slot string) string {
	return fmt.Sprintf("/api/check-availability?doctor=%s&date=%s&time=%s",
		url.QueryEscape(doctor), url.QueryEscape(date), url.QueryEscape(slot))
}

func TestCheckAvailability(t *testing.T) {
	app := setupApp(t)
	now := testNow

	booked := models.Appointment{
		Service: "Cleaning", Doctor: "Dr. A", Date: "2999-01-01", Time: "10:00",
		Name: "N", Phone: "1", Email: "n@example.com",
		Status: models.StatusActive, ReferenceNumber: "900001",
		CreatedAt: now, UpdatedAt: now,
	}
	mustCreate(t, &booked)

	cancelled := models.Appointment{
		Service: "Cleaning", Doctor: "Dr. A", Date: "2999-01-01", Time: "11:00",
		Name: "N", Phone: "1", Email: "n@example.com",
		Status: models.StatusCancelled, ReferenceNumber: "900002",
		CreatedAt: now, UpdatedAt: now,
	}
	mustCreate(t, &cancelled)

	t.Run("free slot", func(t *testing.T) {
		status, body := requestMap(t, app, "GET", availabilityPath("Dr. A", "2999-01-01", "15:00"), nil)
		if status != 200 || body["available"] != true {
			t.Fatalf("status = %d, body %v", status, body)
		}
	})

	t.Run("occupied slot", func(t *testing.T) {
		status, body := requestMap(t, app, "GET", availabilityPath("Dr. A", "2999-01-01", "10:00"), nil)
		if status != 200 || body["available"] != false {
			t.Fatalf("status = %d, body %v", status, body)
		}
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		status, body := requestMap(t, app, "GET", availabilityPath("Dr. A", "2999-01-01", "11:00"), nil)
		if status != 200 || body["available"] != true {
			t.Fatalf("status = %d, body %v", status, body)
		}
	})

	t.Run("past slot today", func(t *testing.T) {
		today := testNow.Format("2006-01-02")
		status, body := requestMap(t, app, "GET", availabilityPath("Dr. A", today, "09:00"), nil)
		if status != 200 || body["available"] != false {
			t.Fatalf("status = %d, body %v", status, body)
		}
		if body["reason"] == nil {
			t.Errorf("expected a reason for a passed slot, body %v", body)
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		status, _ := requestMap(t, app, "GET", "/api/check-availability?doctor=Dr.+A", nil)
		if status != 400 {
			t.Fatalf("status = %d, want 400", status)
		}
	})
}

func TestGetBookedSlots(t *testing.T) {
	app := setupApp(t)
	now := testNow

	rows := []models.Appointment{
		{Service: "A", Doctor: "Dr. A", Date: "2999-01-01", Time: "10:00", Name: "N", Phone: "1",
			Email: "n@example.com", Status: models.StatusActive, ReferenceNumber: "910001",
			CreatedAt: now, UpdatedAt: now},
		{Service: "B", Doctor: "Dr. A", Date: "2999-01-01", Time: "11:00", Name: "N", Phone: "1",
			Email: "n@example.com", Status: models.StatusCancelled, ReferenceNumber: "910002",
			CreatedAt: now, UpdatedAt: now},
		// Created outside the trailing window; not consulted even though
		// its date is in range.
		{Service: "C", Doctor: "Dr. A", Date: "2999-01-01", Time: "12:00", Name: "N", Phone: "1",
			Email: "n@example.com", Status: models.StatusActive, ReferenceNumber: "910003",
			CreatedAt: now.AddDate(0, 0, -40), UpdatedAt: now.AddDate(0, 0, -40)},
		{Service: "D", Doctor: "Dr. B", Date: "2999-01-01", Time: "10:00", Name: "N", Phone: "1",
			Email: "n@example.com", Status: models.StatusActive, ReferenceNumber: "910004",
			CreatedAt: now, UpdatedAt: now},
	}
	for i := range rows {
		mustCreate(t, &rows[i])
	}

	status, body := requestMap(t, app, "GET", "/api/booked-slots/"+url.PathEscape("Dr. A")+"?date=2999-01-01", nil)
	if status != 200 {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if got := body["count"].(float64); got != 1 {
		t.Fatalf("count = %v, want 1 (cancelled and out-of-window excluded), body %v", got, body)
	}
	slot := body["bookedSlots"].([]any)[0].(map[string]any)
	if slot["date"] != "2999-01-01" || slot["time"] != "10:00" {
		t.Fatalf("bookedSlots = %v", body["bookedSlots"])
	}

	t.Run("missing doctor", func(t *testing.T) {
		status, _ := request(t, app, "GET", "/api/booked-slots/?date=2999-01-01", nil)
		if status != 400 && status != 404 {
			t.Fatalf("status = %d, want client error", status)
		}
	})
}

func TestGetAvailableSlots(t *testing.T) {
	app := setupApp(t)
	now := testNow
	today := now.Format("2006-01-02")

	booked := models.Appointment{
		Service: "A", Doctor: "Dr. A", Date: "2999-01-01", Time: "15:00", Name: "N", Phone: "1",
		Email: "n@example.com", Status: models.StatusActive, ReferenceNumber: "920001",
		CreatedAt: now, UpdatedAt: now,
	}
	mustCreate(t, &booked)

	t.Run("doctorless future date returns full catalog", func(t *testing.T) {
		status, body := requestMap(t, app, "GET", "/api/available-slots?date=2999-01-01", nil)
		if status != 200 {
			t.Fatalf("status = %d, body %v", status, body)
		}
		if got := body["count"].(float64); got != 9 {
			t.Fatalf("count = %v, want 9", got)
		}
	})

	t.Run("doctorless today filters passed slots only", func(t *testing.T) {
		status, body := requestMap(t, app, "GET", "/api/available-slots?date="+today, nil)
		if status != 200 {
			t.Fatalf("status = %d, body %v", status, body)
		}
		slots := body["availableSlots"].([]any)
		if len(slots) != 5 || slots[0] != "14:00" {
			t.Fatalf("availableSlots = %v, want 14:00..18:00", slots)
		}
	})

	t.Run("doctor bookings are subtracted", func(t *testing.T) {
		status, body := requestMap(t, app, "GET",
			"/api/available-slots?doctor="+url.QueryEscape("Dr. A")+"&date=2999-01-01", nil)
		if status != 200 {
			t.Fatalf("status = %d, body %v", status, body)
		}
		for _, s := range body["availableSlots"].([]any) {
			if s == "15:00" {
				t.Fatalf("booked slot still offered: %v", body["availableSlots"])
			}
		}
	})

	t.Run("selected slot invalidation flag", func(t *testing.T) {
		status, body := requestMap(t, app, "GET",
			"/api/available-slots?doctor="+url.QueryEscape("Dr. A")+"&date=2999-01-01&time=15:00", nil)
		if status != 200 || body["isTimeAvailable"] != false {
			t.Fatalf("taken selection: status = %d, isTimeAvailable = %v", status, body["isTimeAvailable"])
		}

		status, body = requestMap(t, app, "GET",
			"/api/available-slots?doctor="+url.QueryEscape("Dr. A")+"&date=2999-01-01&time=16:00", nil)
		if status != 200 || body["isTimeAvailable"] != true {
			t.Fatalf("free selection: status = %d, isTimeAvailable = %v", status, body["isTimeAvailable"])
		}
	})

	t.Run("missing date", func(t *testing.T) {
		status, _ := requestMap(t, app, "GET", "/api/available-slots", nil)
		if status != 400 {
			t.Fatalf("status = %d, want 400", status)
		}
	})
}
