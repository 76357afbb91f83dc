package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupPaymentRoutes configures the payment ledger routes.
func SetupPaymentRoutes(app *fiber.App) {
	payments := app.Group("/payments")

	payments.Post("/", controllers.CreatePayment)
	payments.Get("/booking/:id", controllers.GetBookingPayment)
}
