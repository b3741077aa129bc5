package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/models"
)

// GetUser returns a stored user profile.
func GetUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"phone":     user.Phone,
		"photoURL":  user.PhotoURL,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	})
}

type userInput struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photoURL"`
}

// CreateOrUpdateUser upserts the profile for an externally authenticated
// user; the auth provider's uid is the primary key.
func CreateOrUpdateUser(c *fiber.Ctx) error {
	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to parse request body",
		})
	}
	if input.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "User ID is required",
		})
	}

	now := timeNow()

	var existing models.User
	err := db.DB.First(&existing, "id = ?", input.UserID).Error
	if err == nil {
		err = db.DB.Model(&models.User{}).
			Where("id = ?", input.UserID).
			Updates(map[string]any{
				"email":      input.Email,
				"name":       input.Name,
				"phone":      input.Phone,
				"photo_url":  input.PhotoURL,
				"updated_at": now,
			}).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Server error",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "User data updated",
			"userId":  input.UserID,
		})
	}

	user := models.User{
		ID:        input.UserID,
		Email:     input.Email,
		Name:      input.Name,
		Phone:     input.Phone,
		PhotoURL:  input.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created",
		"userId":  input.UserID,
	})
}
