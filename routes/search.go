package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupSearchRoutes configures the cross-catalogue search routes.
func SetupSearchRoutes(app *fiber.App) {
	search := app.Group("/search")

	search.Get("/", controllers.Search)
	search.Get("/featured", controllers.SearchFeatured)
	search.Get("/popular", controllers.SearchPopular)
}
