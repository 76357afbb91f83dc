package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

type BookingInput struct {
	ServiceID      uint      `json:"service_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	ServiceAddress string    `json:"service_address"`
	CustomerNotes  string    `json:"customer_notes"`
}

// CreateBooking requests a service for the authenticated customer. The
// provider reference and quoted price are copied from the service row.
func CreateBooking(c *fiber.Ctx) error {
	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.ServiceID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Service is required")
	}
	if input.ScheduledAt.Before(time.Now()) {
		return utils.Error(c, fiber.StatusBadRequest, "Scheduled date and time must be in the future")
	}

	var service models.Service
	if db.DB.Where("id = ? AND is_active = ?", input.ServiceID, true).First(&service).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Service not found")
	}
	if !service.IsAvailable {
		return utils.Error(c, fiber.StatusConflict, "Service is currently not available for booking")
	}

	customerID := middleware.UserID(c)
	if service.ProviderID == customerID {
		return utils.Error(c, fiber.StatusBadRequest, "You cannot book your own service")
	}

	booking := models.Booking{
		ServiceID:                service.ID,
		CustomerID:               customerID,
		ProviderID:               service.ProviderID,
		Status:                   models.BookingRequested,
		ScheduledAt:              input.ScheduledAt,
		EstimatedDurationMinutes: service.EstimatedDurationMinutes,
		QuotedPrice:              service.BasePrice,
		ServiceAddress:           input.ServiceAddress,
		CustomerNotes:            input.CustomerNotes,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&service).Update("total_bookings", gorm.Expr("total_bookings + 1")).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create booking")
	}
	return utils.Success(c, fiber.StatusCreated, "Booking created", booking)
}

// GetCustomerBookings lists the caller's bookings, newest first.
func GetCustomerBookings(c *fiber.Ctx) error {
	return listBookings(c, "customer_id = ?", middleware.UserID(c))
}

// GetProviderBookings lists bookings addressed to the caller as provider.
func GetProviderBookings(c *fiber.Ctx) error {
	return listBookings(c, "provider_id = ?", middleware.UserID(c))
}

func listBookings(c *fiber.Ctx, condition string, userID uint) error {
	page, size := utils.PageParams(c)

	var total int64
	db.DB.Model(&models.Booking{}).Where(condition, userID).Count(&total)

	var bookings []models.Booking
	if err := db.DB.Preload("Service").Preload("Customer").Preload("Provider").
		Where(condition, userID).
		Order("created_at DESC").Limit(size).Offset(page * size).
		Find(&bookings).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch bookings")
	}
	return utils.Success(c, fiber.StatusOK, "Bookings fetched", utils.NewPage(bookings, page, size, total))
}

// GetBooking returns one booking; only its customer, its provider or an
// admin may read it.
func GetBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if db.DB.Preload("Service").Preload("Customer").Preload("Provider").
		First(&booking, c.Params("id")).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}

	userID := middleware.UserID(c)
	if booking.CustomerID != userID && booking.ProviderID != userID && !middleware.HasRole(c, models.RoleAdmin) {
		return utils.Error(c, fiber.StatusForbidden, "You don't have access to this booking")
	}
	return utils.Success(c, fiber.StatusOK, "Booking fetched", booking)
}

type TransitionInput struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// AcceptBooking: provider accepts a REQUESTED booking.
func AcceptBooking(c *fiber.Ctx) error {
	return providerTransition(c, "accepted", func(booking *models.Booking, input *TransitionInput) error {
		if input.Notes != "" {
			booking.ProviderNotes = input.Notes
		}
		return booking.Accept(db.DB)
	})
}

// RejectBooking: provider rejects a REQUESTED booking with a reason.
func RejectBooking(c *fiber.Ctx) error {
	return providerTransition(c, "rejected", func(booking *models.Booking, input *TransitionInput) error {
		return booking.Reject(db.DB, input.Reason)
	})
}

// StartBooking: provider starts an ACCEPTED booking.
func StartBooking(c *fiber.Ctx) error {
	return providerTransition(c, "started", func(booking *models.Booking, input *TransitionInput) error {
		return booking.Start(db.DB)
	})
}

// CompleteBooking: provider completes work on a booking.
func CompleteBooking(c *fiber.Ctx) error {
	return providerTransition(c, "completed", func(booking *models.Booking, input *TransitionInput) error {
		if input.Notes != "" {
			booking.ProviderNotes = input.Notes
		}
		return booking.Complete(db.DB)
	})
}

func providerTransition(c *fiber.Ctx, verb string, apply func(*models.Booking, *TransitionInput) error) error {
	input := new(TransitionInput)
	// Transition bodies are optional.
	_ = c.BodyParser(input)

	var booking models.Booking
	if db.DB.Preload("Service").Preload("Customer").First(&booking, c.Params("id")).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}
	if booking.ProviderID != middleware.UserID(c) {
		return utils.Error(c, fiber.StatusForbidden, "You can only manage your own bookings")
	}

	if err := apply(&booking, input); err != nil {
		return utils.Error(c, fiber.StatusConflict, err.Error())
	}

	go utils.NotifyBookingStatus(booking.Customer.Email, booking.Customer.FirstName, booking.Service.Title, string(booking.Status))
	return utils.Success(c, fiber.StatusOK, "Booking "+verb, booking)
}

// CancelBooking: the booking's customer, or an admin, cancels it while it
// is still REQUESTED or ACCEPTED.
func CancelBooking(c *fiber.Ctx) error {
	input := new(TransitionInput)
	_ = c.BodyParser(input)

	var booking models.Booking
	if db.DB.Preload("Service").Preload("Customer").First(&booking, c.Params("id")).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}

	by := models.CancelledByCustomer
	if booking.CustomerID != middleware.UserID(c) {
		if !middleware.HasRole(c, models.RoleAdmin) {
			return utils.Error(c, fiber.StatusForbidden, "You can only cancel your own bookings")
		}
		by = models.CancelledByAdmin
	}

	if err := booking.Cancel(db.DB, by, input.Reason); err != nil {
		return utils.Error(c, fiber.StatusConflict, err.Error())
	}

	go utils.NotifyBookingStatus(booking.Customer.Email, booking.Customer.FirstName, booking.Service.Title, string(booking.Status))
	return utils.Success(c, fiber.StatusOK, "Booking cancelled", booking)
}
