package controllers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/models"
	"github.com/smilecare/dental-clinic-api/redis"
)

type ratingInput struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// RateAppointment records a one-time rating on a completed appointment and
// folds it into the doctor's running average. The appointment update and
// the doctor aggregate update share one transaction so a failure cannot
// leave them inconsistent.
func RateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var input ratingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to parse request body",
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Rating must be between 1 and 5",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Appointment not found",
		})
	}

	if appointment.IsRated {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "This appointment has already been rated",
		})
	}
	if appointment.Status != models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only completed appointments can be rated",
		})
	}

	now := timeNow()
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Appointment{}).
			Where("id = ?", appointment.ID).
			Updates(map[string]any{
				"is_rated":   true,
				"rating":     input.Rating,
				"review":     input.Review,
				"rated_at":   now,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}
		return updateDoctorRating(tx, &appointment, input.Rating)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	redis.Delete(doctorsCacheKey)

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Thank you for your rating!",
		"appointmentId": appointment.ID,
		"rating":        input.Rating,
		"review":        input.Review,
	})
}

// updateDoctorRating folds one rating into the doctor's aggregate:
// (oldAvg*oldCount + rating) / (oldCount+1), one decimal place. An
// appointment without a resolvable doctor leaves aggregates untouched.
func updateDoctorRating(tx *gorm.DB, appointment *models.Appointment, rating int) error {
	var doctor models.Doctor
	var err error
	if appointment.DoctorID != nil {
		err = tx.First(&doctor, *appointment.DoctorID).Error
	} else if appointment.Doctor != "" {
		err = tx.Where("name = ?", appointment.Doctor).First(&doctor).Error
	} else {
		return nil
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	total := doctor.Rating*float64(doctor.RatingCount) + float64(rating)
	count := doctor.RatingCount + 1
	average := math.Round(total/float64(count)*10) / 10

	return tx.Model(&models.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]any{
			"rating":       average,
			"rating_count": count,
		}).Error
}
