package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilecare/dental-clinic-api/controllers"
)

// SetupAppointmentRoutes configures all booking and lifecycle routes
func SetupAppointmentRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/check-availability", controllers.CheckAvailability)
	api.Get("/available-slots", controllers.GetAvailableSlots)
	api.Get("/booked-slots/:doctor", controllers.GetBookedSlots)

	appointments := api.Group("/appointments")
	appointments.Post("/", controllers.CreateAppointment)
	appointments.Post("/update-statuses", controllers.UpdateAppointmentStatuses)
	appointments.Get("/by-user/:userId", controllers.GetUserAppointments)
	appointments.Get("/:referenceNumber/status", controllers.GetAppointmentStatus)
	appointments.Post("/:id/rate", controllers.RateAppointment)
	appointments.Patch("/:id", controllers.UpdateAppointment)
}
