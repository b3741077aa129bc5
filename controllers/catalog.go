package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/models"
	"github.com/smilecare/dental-clinic-api/redis"
)

const (
	servicesCacheKey = "catalog:services"
	doctorsCacheKey  = "catalog:doctors"
	catalogCacheTTL  = 5 * time.Minute
)

// GetServices returns all services sorted by name.
func GetServices(c *fiber.Ctx) error {
	var services []models.Service
	if redis.GetJSON(servicesCacheKey, &services) {
		return c.JSON(services)
	}
	if err := db.DB.Order("name").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
	redis.SetJSON(servicesCacheKey, services, catalogCacheTTL)
	return c.JSON(services)
}

// GetDoctors returns all doctors sorted by name.
func GetDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if redis.GetJSON(doctorsCacheKey, &doctors) {
		return c.JSON(doctors)
	}
	if err := db.DB.Order("name").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
	redis.SetJSON(doctorsCacheKey, doctors, catalogCacheTTL)
	return c.JSON(doctors)
}

// GetDoctorsByService lists the doctors providing a service.
func GetDoctorsByService(c *fiber.Ctx) error {
	serviceID := c.Params("serviceId")

	var service models.Service
	if err := db.DB.First(&service, serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	var allDoctors []models.Doctor
	if err := db.DB.Find(&allDoctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	doctors := make([]models.Doctor, 0, len(allDoctors))
	for _, doctor := range allDoctors {
		if doctor.ProvidesService(&service) {
			doctors = append(doctors, doctor)
		}
	}

	return c.JSON(fiber.Map{
		"service": service.Name,
		"doctors": doctors,
	})
}

// GetServicesByDoctor lists the services a doctor provides.
func GetServicesByDoctor(c *fiber.Ctx) error {
	doctorID := c.Params("doctorId")

	var doctor models.Doctor
	if err := db.DB.First(&doctor, doctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	var allServices []models.Service
	if err := db.DB.Find(&allServices).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	services := make([]models.Service, 0, len(allServices))
	for _, service := range allServices {
		if doctor.ProvidesService(&service) {
			services = append(services, service)
		}
	}

	return c.JSON(fiber.Map{
		"doctor":   doctor.Name,
		"services": services,
	})
}
