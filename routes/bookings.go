package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupBookingRoutes configures the booking lifecycle routes.
func SetupBookingRoutes(app *fiber.App) {
	bookings := app.Group("/bookings")

	bookings.Post("/", controllers.CreateBooking)
	bookings.Get("/customer", controllers.GetCustomerBookings)
	bookings.Get("/provider", controllers.GetProviderBookings)
	bookings.Get("/:id", controllers.GetBooking)

	bookings.Put("/:id/accept", controllers.AcceptBooking)
	bookings.Put("/:id/reject", controllers.RejectBooking)
	bookings.Put("/:id/start", controllers.StartBooking)
	bookings.Put("/:id/complete", controllers.CompleteBooking)
	bookings.Put("/:id/cancel", controllers.CancelBooking)
}
