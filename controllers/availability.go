package controllers

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/models"
	"github.com/smilecare/dental-clinic-api/schedule"
)

// timeNow is swapped out in tests; everything below the handlers takes the
// moment as an explicit parameter.
var timeNow = time.Now

const defaultBookedSlotsWindowDays = 30

// bookedSlotsWindowDays bounds how far back booked-slot queries look at
// creation time. Kept configurable pending confirmation of the original
// 30-day choice.
func bookedSlotsWindowDays() int {
	raw := os.Getenv("BOOKED_SLOTS_WINDOW_DAYS")
	if raw == "" {
		return defaultBookedSlotsWindowDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultBookedSlotsWindowDays
	}
	return days
}

func bookedAppointments(doctor, date string, now time.Time) ([]models.Appointment, error) {
	windowStart := now.AddDate(0, 0, -bookedSlotsWindowDays())
	query := db.DB.
		Where("doctor = ? AND status <> ?", doctor, models.StatusCancelled).
		Where("created_at >= ?", windowStart)
	if date != "" {
		query = query.Where(`"date" = ?`, date)
	}
	var appointments []models.Appointment
	err := query.Find(&appointments).Error
	return appointments, err
}

// CheckAvailability reports whether a (doctor, date, time) slot is free.
func CheckAvailability(c *fiber.Ctx) error {
	doctor := c.Query("doctor")
	date := c.Query("date")
	slot := c.Query("time")

	if doctor == "" || date == "" || slot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Doctor, date and time are required",
		})
	}

	if schedule.IsSlotPast(date, slot, timeNow()) {
		return c.JSON(fiber.Map{
			"available": false,
			"doctor":    doctor,
			"date":      date,
			"time":      slot,
			"reason":    "This time has already passed for today",
		})
	}

	var count int64
	err := db.DB.Model(&models.Appointment{}).
		Where(`doctor = ? AND "date" = ? AND "time" = ? AND status <> ?`,
			doctor, date, slot, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"available": count == 0,
		"doctor":    doctor,
		"date":      date,
		"time":      slot,
	})
}

// GetBookedSlots returns the doctor's non-cancelled bookings created within
// the trailing window, optionally narrowed to one date.
func GetBookedSlots(c *fiber.Ctx) error {
	doctor := c.Params("doctor")
	date := c.Query("date")

	if doctor == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Doctor is required",
		})
	}

	appointments, err := bookedAppointments(doctor, date, timeNow())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	bookedSlots := make([]fiber.Map, 0, len(appointments))
	for _, appointment := range appointments {
		bookedSlots = append(bookedSlots, fiber.Map{
			"date": appointment.Date,
			"time": appointment.Time,
		})
	}

	return c.JSON(fiber.Map{
		"doctor":      doctor,
		"bookedSlots": bookedSlots,
		"count":       len(bookedSlots),
	})
}

// GetAvailableSlots resolves the bookable slots for a doctor and date. With
// an empty doctor only past-today slots are removed. When the caller passes
// its currently selected time the response also says whether that specific
// slot is still available, so the form can clear an invalidated selection.
func GetAvailableSlots(c *fiber.Ctx) error {
	doctor := c.Query("doctor")
	date := c.Query("date")
	selected := c.Query("time")

	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date is required",
		})
	}

	now := timeNow()
	var booked []string
	if doctor != "" {
		appointments, err := bookedAppointments(doctor, date, now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error",
			})
		}
		for _, appointment := range appointments {
			booked = append(booked, appointment.Time)
		}
	}

	available := schedule.AvailableSlots(booked, date, now)

	response := fiber.Map{
		"doctor":         doctor,
		"date":           date,
		"availableSlots": available,
		"count":          len(available),
	}
	if selected != "" {
		isTimeAvailable := false
		for _, s := range available {
			if s == selected {
				isTimeAvailable = true
				break
			}
		}
		response["isTimeAvailable"] = isTimeAvailable
	}

	return c.JSON(response)
}
