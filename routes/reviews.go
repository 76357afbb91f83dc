package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupReviewRoutes configures review reading and writing routes.
func SetupReviewRoutes(app *fiber.App) {
	reviews := app.Group("/reviews")

	reviews.Post("/", controllers.CreateReview)
	reviews.Get("/service/:id", controllers.GetServiceReviews)
	reviews.Get("/provider/:id", controllers.GetProviderReviews)
	reviews.Get("/customer", controllers.GetCustomerReviews)
	reviews.Get("/:id", controllers.GetReview)
	reviews.Put("/:id/response", controllers.RespondToReview)
}
