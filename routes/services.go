package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupServiceRoutes configures the service listing routes.
func SetupServiceRoutes(app *fiber.App) {
	services := app.Group("/services")

	services.Get("/", controllers.GetAllServices)
	services.Get("/search", controllers.SearchServices)
	services.Get("/featured", controllers.GetFeaturedServices)
	services.Get("/slug/:slug", controllers.GetServiceBySlug)
	services.Get("/category/:id", controllers.GetCategoryServices)
	services.Get("/provider/:id", controllers.GetProviderServices)
	services.Get("/:id", controllers.GetService)

	services.Post("/", controllers.CreateService)
	services.Put("/:id", controllers.UpdateService)
	services.Delete("/:id", controllers.DeleteService)
}
