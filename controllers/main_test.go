package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilecare/dental-clinic-api/controllers"
	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/models"
	"github.com/smilecare/dental-clinic-api/routes"
)

// testNow is the frozen clock for every handler test: a Monday, mid-day,
// between the 12:00 and 14:00 slots.
var testNow = time.Date(2025, 6, 16, 12, 30, 0, 0, time.Local)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	db.DB = gdb
	db.Migrate()

	controllers.SetClock(func() time.Time { return testNow })
	t.Cleanup(func() {
		controllers.SetClock(time.Now)
		db.DB = nil
		sqlDB.Close()
	})

	// Same config as main: path params arrive percent-decoded.
	app := fiber.New(fiber.Config{
		UnescapePath: true,
	})
	routes.SetupCatalogRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupUserRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, data
}

func requestMap(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	status, data := request(t, app, method, path, body)
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, data, err)
	}
	return status, out
}

func bookingBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"service": "Teeth Cleaning",
		"doctor":  "Dr. Olena Kovalenko",
		"date":    "2999-01-01",
		"time":    "10:00",
		"name":    "Ivan Petrenko",
		"phone":   "+380501234567",
		"email":   "ivan@example.com",
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func mustCreate(t *testing.T, value any) {
	t.Helper()
	if err := db.DB.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func loadAppointment(t *testing.T, id uint) models.Appointment {
	t.Helper()
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		t.Fatalf("load appointment %d: %v", id, err)
	}
	return appointment
}

func wantStatus(t *testing.T, got, want int, body []byte) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d (body %s)", got, want, body)
	}
}
