package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/smilecare/dental-clinic-api/cron"
	"github.com/smilecare/dental-clinic-api/db"
	"github.com/smilecare/dental-clinic-api/redis"
	"github.com/smilecare/dental-clinic-api/routes"
)

func main() {
	// Path parameters carry doctor names and auth uids, so percent-encoded
	// segments must be decoded before they reach the handlers.
	app := fiber.New(fiber.Config{
		UnescapePath: true,
	})
	db.Init()
	db.Migrate()
	redis.Init()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Dental Clinic API",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"services":          "/api/services",
				"doctors":           "/api/doctors",
				"doctorsByService":  "/api/doctors/by-service/:serviceId",
				"servicesByDoctor":  "/api/services/by-doctor/:doctorId",
				"checkAvailability": "/api/check-availability",
				"availableSlots":    "/api/available-slots",
				"bookedSlots":       "/api/booked-slots/:doctor",
				"appointments": fiber.Map{
					"post":      "/api/appointments",
					"getByUser": "/api/appointments/by-user/:userId",
					"update":    "/api/appointments/:appointmentId",
					"rate":      "/api/appointments/:appointmentId/rate",
					"status":    "/api/appointments/:referenceNumber/status",
				},
				"users": fiber.Map{
					"getUser":          "/api/user/:userId",
					"createUpdateUser": "/api/user",
				},
			},
		})
	})

	routes.SetupCatalogRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupUserRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	cron.StartStatusSweep()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
