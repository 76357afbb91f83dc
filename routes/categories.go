package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupCategoryRoutes configures category browsing and admin management.
func SetupCategoryRoutes(app *fiber.App) {
	categories := app.Group("/categories")

	categories.Get("/", controllers.GetAllCategories)
	categories.Get("/top-level", controllers.GetTopLevelCategories)
	categories.Get("/slug/:slug", controllers.GetCategoryBySlug)
	categories.Get("/:id/subcategories", controllers.GetSubcategories)
	categories.Get("/:id", controllers.GetCategory)

	categories.Post("/", controllers.CreateCategory)
	categories.Put("/:id", controllers.UpdateCategory)
	categories.Delete("/:id", controllers.DeleteCategory)
}
