package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smilecare/dental-clinic-api/controllers"
)

// SetupUserRoutes configures the user profile routes
func SetupUserRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/user/:userId", controllers.GetUser)
	api.Post("/user", controllers.CreateOrUpdateUser)
}
