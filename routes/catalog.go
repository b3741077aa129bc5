package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilecare/dental-clinic-api/controllers"
)

// SetupCatalogRoutes configures the service and doctor catalog routes
func SetupCatalogRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/services", controllers.GetServices)
	api.Get("/doctors", controllers.GetDoctors)
	api.Get("/doctors/by-service/:serviceId", controllers.GetDoctorsByService)
	api.Get("/services/by-doctor/:doctorId", controllers.GetServicesByDoctor)
}
