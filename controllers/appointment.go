package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/models"
	"github.com/smilecare/dental-clinic-api/schedule"
	"github.com/smilecare/dental-clinic-api/utils"
)

const referenceNumberAttempts = 5

// AppointmentInput is the booking form payload.
type AppointmentInput struct {
	Service string `json:"service"`
	Doctor  string `json:"doctor"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// CreateAppointment books a new appointment. Past-today slots are rejected;
// a doctor's slot may hold at most one non-cancelled appointment, enforced
// twice: a friendly pre-check and the partial unique index at insert time,
// which closes the race between concurrent bookings.
func CreateAppointment(c *fiber.Ctx) error {
	var input AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to parse request body",
		})
	}

	if input.Service == "" || input.Date == "" || input.Time == "" ||
		input.Name == "" || input.Phone == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Service, date, time, name, phone and email are required",
		})
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Date must be in YYYY-MM-DD format",
		})
	}
	if !schedule.ValidSlot(input.Time) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid time slot",
		})
	}

	now := timeNow()
	if schedule.IsSlotPast(input.Date, input.Time, now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cannot book a time that has already passed",
		})
	}

	var doctorID *uint
	if input.Doctor != "" {
		var count int64
		err := db.DB.Model(&models.Appointment{}).
			Where(`doctor = ? AND "date" = ? AND "time" = ? AND status <> ?`,
				input.Doctor, input.Date, input.Time, models.StatusCancelled).
			Count(&count).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Server error",
			})
		}
		if count > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "This time is already taken for the selected doctor",
			})
		}

		var doctor models.Doctor
		if err := db.DB.Where("name = ?", input.Doctor).First(&doctor).Error; err == nil {
			doctorID = &doctor.ID
		}
	}

	referenceNumber, err := newReferenceNumber()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	// Backdated submissions land directly in completed.
	status := models.StatusActive
	if schedule.IsAppointmentOver(input.Date, input.Time, now) {
		status = models.StatusCompleted
	}

	appointment := models.Appointment{
		Service:         input.Service,
		Doctor:          input.Doctor,
		DoctorID:        doctorID,
		Date:            input.Date,
		Time:            input.Time,
		Name:            input.Name,
		Phone:           input.Phone,
		Email:           input.Email,
		Message:         input.Message,
		UserID:          input.UserID,
		Status:          status,
		ReferenceNumber: referenceNumber,
		IsRated:         false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "This time is already taken for the selected doctor",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	go func(a models.Appointment) {
		if err := utils.SendBookingConfirmation(&a); err != nil {
			log.Printf("Failed to send confirmation for appointment %d: %v", a.ID, err)
		}
	}(appointment)

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Appointment created successfully",
		"id":              appointment.ID,
		"referenceNumber": appointment.ReferenceNumber,
	})
}

// newReferenceNumber generates a 6-digit reference not already in use,
// retrying on collision.
func newReferenceNumber() (string, error) {
	for i := 0; i < referenceNumberAttempts; i++ {
		candidate := utils.GenerateReferenceNumber()
		var count int64
		err := db.DB.Model(&models.Appointment{}).
			Where("reference_number = ?", candidate).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique reference number in %d attempts", referenceNumberAttempts)
}

// GetUserAppointments lists a user's appointments (matched by email), after
// materializing any active ones whose time has passed.
func GetUserAppointments(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		// Unknown users simply have no appointments yet.
		return c.JSON(fiber.Map{
			"success":      true,
			"userId":       userID,
			"appointments": []models.Appointment{},
			"count":        0,
			"active":       0,
			"completed":    0,
			"cancelled":    0,
		})
	}

	if user.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "User email not found",
		})
	}

	appointments := []models.Appointment{}
	if err := db.DB.Where("email = ?", user.Email).Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	now := timeNow()
	for i := range appointments {
		if err := materializeStatus(&appointments[i], now); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Server error",
			})
		}
	}

	schedule.SortAppointments(appointments)

	var active, completed, cancelled int
	for _, appointment := range appointments {
		switch appointment.Status {
		case models.StatusActive:
			active++
		case models.StatusCompleted:
			completed++
		case models.StatusCancelled:
			cancelled++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"userId":       userID,
		"email":        user.Email,
		"appointments": appointments,
		"count":        len(appointments),
		"active":       active,
		"completed":    completed,
		"cancelled":    cancelled,
	})
}

// materializeStatus rewrites a stale active appointment to completed, both
// in the store and in memory. Idempotent; every read path and the sweep go
// through it.
func materializeStatus(appointment *models.Appointment, now time.Time) error {
	if schedule.EffectiveStatus(appointment.Status, appointment.Date, appointment.Time, now) == appointment.Status {
		return nil
	}
	err := db.DB.Model(&models.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(map[string]any{
			"status":     models.StatusCompleted,
			"updated_at": now,
		}).Error
	if err != nil {
		return err
	}
	appointment.Status = models.StatusCompleted
	appointment.UpdatedAt = now
	return nil
}

// UpdateAppointment handles the cancel transition. Only active appointments
// that have not yet passed can be cancelled; cancelled is terminal.
func UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to parse request body",
		})
	}
	if body.Status != string(models.StatusCancelled) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   `Invalid status. Only "cancelled" is allowed`,
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Appointment not found",
		})
	}

	now := timeNow()
	if appointment.Status != models.StatusActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only active appointments can be cancelled",
		})
	}
	if schedule.IsAppointmentOver(appointment.Date, appointment.Time, now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cannot cancel an appointment that has already passed",
		})
	}

	err := db.DB.Model(&models.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(map[string]any{
			"status":     models.StatusCancelled,
			"updated_at": now,
		}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Appointment cancelled successfully",
		"appointmentId": appointment.ID,
		"status":        models.StatusCancelled,
	})
}

// GetAppointmentStatus is the public, unauthenticated lookup by reference
// number. Reference numbers are not guaranteed unique; first match wins.
func GetAppointmentStatus(c *fiber.Ctx) error {
	referenceNumber := c.Params("referenceNumber")

	var appointment models.Appointment
	err := db.DB.Where("reference_number = ?", referenceNumber).
		First(&appointment).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No appointment found with this reference number",
		})
	}

	if err := materializeStatus(&appointment, timeNow()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"id":              appointment.ID,
		"referenceNumber": appointment.ReferenceNumber,
		"service":         appointment.Service,
		"doctor":          appointment.Doctor,
		"date":            appointment.Date,
		"time":            appointment.Time,
		"status":          appointment.Status,
		"name":            appointment.Name,
		"phone":           appointment.Phone,
		"createdAt":       appointment.CreatedAt,
	})
}

// SweepAppointmentStatuses rewrites every stale active appointment to
// completed, one write per row. Shared by the administrative endpoint and
// the optional cron schedule.
func SweepAppointmentStatuses(now time.Time) (int, error) {
	var appointments []models.Appointment
	err := db.DB.Where("status = ?", models.StatusActive).Find(&appointments).Error
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range appointments {
		if !schedule.IsAppointmentOver(appointments[i].Date, appointments[i].Time, now) {
			continue
		}
		if err := materializeStatus(&appointments[i], now); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// UpdateAppointmentStatuses is the administrative sweep endpoint.
func UpdateAppointmentStatuses(c *fiber.Ctx) error {
	updated, err := SweepAppointmentStatuses(timeNow())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      fmt.Sprintf("Statuses updated for %d appointments", updated),
		"updatedCount": updated,
	})
}
