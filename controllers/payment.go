package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

type PaymentInput struct {
	BookingID uint                 `json:"booking_id"`
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Method    models.PaymentMethod `json:"method"`
}

// CreatePayment records a payment against the caller's booking. This is
// a ledger entry only; it never drives booking transitions.
func CreatePayment(c *fiber.Ctx) error {
	input := new(PaymentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.BookingID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Booking is required")
	}
	if input.Method == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Payment method is required")
	}

	var booking models.Booking
	if db.DB.First(&booking, input.BookingID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}
	if booking.CustomerID != middleware.UserID(c) {
		return utils.Error(c, fiber.StatusForbidden, "You can only pay for your own bookings")
	}

	var existing models.Payment
	if db.DB.Where("booking_id = ?", booking.ID).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "A payment already exists for this booking")
	}

	amount := input.Amount
	if amount == 0 {
		amount = booking.QuotedPrice
	}
	if amount <= 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Amount must be greater than 0")
	}

	currency := input.Currency
	if currency == "" {
		currency = booking.Currency
	}

	payment := models.Payment{
		BookingID: booking.ID,
		Amount:    amount,
		Currency:  currency,
		Method:    input.Method,
		Status:    models.PaymentPending,
	}
	if err := db.DB.Create(&payment).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to record payment")
	}
	return utils.Success(c, fiber.StatusCreated, "Payment recorded", payment)
}

// GetBookingPayment returns the payment attached to a booking, visible to
// the booking's customer, its provider and admins.
func GetBookingPayment(c *fiber.Ctx) error {
	var booking models.Booking
	if db.DB.First(&booking, c.Params("id")).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}

	userID := middleware.UserID(c)
	if booking.CustomerID != userID && booking.ProviderID != userID && !middleware.HasRole(c, models.RoleAdmin) {
		return utils.Error(c, fiber.StatusForbidden, "You don't have access to this booking")
	}

	var payment models.Payment
	if db.DB.Where("booking_id = ?", booking.ID).First(&payment).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "No payment found for this booking")
	}
	return utils.Success(c, fiber.StatusOK, "Payment fetched", payment)
}
