package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

type ReviewInput struct {
	BookingID           uint    `json:"booking_id"`
	OverallRating       float64 `json:"overall_rating"`
	QualityRating       float64 `json:"quality_rating"`
	CommunicationRating float64 `json:"communication_rating"`
	PunctualityRating   float64 `json:"punctuality_rating"`
	ValueRating         float64 `json:"value_rating"`
	Title               string  `json:"title"`
	Comment             string  `json:"comment"`
}

// CreateReview writes a review for a completed booking. Preconditions are
// checked in order, each failing distinctly: booking exists, belongs to
// the caller, is COMPLETED, and has no review yet. The denormalized
// service rating is recomputed afterwards; a recompute failure is logged
// and swallowed, never failing the created review.
func CreateReview(c *fiber.Ctx) error {
	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.BookingID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Booking is required")
	}
	if input.OverallRating < 1.0 || input.OverallRating > 5.0 {
		return utils.Error(c, fiber.StatusBadRequest, "Overall rating must be between 1.0 and 5.0")
	}

	var booking models.Booking
	if db.DB.First(&booking, input.BookingID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}
	if booking.CustomerID != middleware.UserID(c) {
		return utils.Error(c, fiber.StatusForbidden, "You can only review your own bookings")
	}
	if booking.Status != models.BookingCompleted {
		return utils.Error(c, fiber.StatusBadRequest, "You can only review completed bookings")
	}
	var existing models.Review
	if db.DB.Where("booking_id = ?", booking.ID).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "A review already exists for this booking")
	}

	review := models.Review{
		BookingID:           booking.ID,
		ServiceID:           booking.ServiceID,
		CustomerID:          booking.CustomerID,
		OverallRating:       input.OverallRating,
		QualityRating:       input.QualityRating,
		CommunicationRating: input.CommunicationRating,
		PunctualityRating:   input.PunctualityRating,
		ValueRating:         input.ValueRating,
		Title:               input.Title,
		Comment:             input.Comment,
	}
	if err := db.DB.Create(&review).Error; err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	// The aggregate is eventually consistent: a failed recompute leaves
	// it stale until the next review or the reconciliation job.
	var service models.Service
	if err := db.DB.First(&service, booking.ServiceID).Error; err == nil {
		if err := service.RecomputeRating(db.DB); err != nil {
			log.Printf("Failed to recompute rating for service %d: %v", service.ID, err)
		}
	}

	return utils.Success(c, fiber.StatusCreated, "Review created", review)
}

// GetServiceReviews lists reviews for a service, paginated.
func GetServiceReviews(c *fiber.Ctx) error {
	page, size := utils.PageParams(c)

	query := db.DB.Model(&models.Review{}).
		Where("service_id = ? AND is_active = ?", c.Params("id"), true)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.Preload("Customer").
		Order("created_at DESC").Limit(size).Offset(page * size).
		Find(&reviews).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}
	return utils.Success(c, fiber.StatusOK, "Reviews fetched", utils.NewPage(reviews, page, size, total))
}

// GetProviderReviews lists reviews across all of a provider's services.
func GetProviderReviews(c *fiber.Ctx) error {
	page, size := utils.PageParams(c)

	query := db.DB.Model(&models.Review{}).
		Joins("JOIN services ON services.id = reviews.service_id").
		Where("services.provider_id = ? AND reviews.is_active = ?", c.Params("id"), true)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.Preload("Customer").Preload("Service").
		Order("reviews.created_at DESC").Limit(size).Offset(page * size).
		Find(&reviews).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}
	return utils.Success(c, fiber.StatusOK, "Reviews fetched", utils.NewPage(reviews, page, size, total))
}

// GetCustomerReviews lists the caller's own reviews.
func GetCustomerReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := db.DB.Preload("Service").
		Where("customer_id = ? AND is_active = ?", middleware.UserID(c), true).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}
	return utils.Success(c, fiber.StatusOK, "Reviews fetched", reviews)
}

func GetReview(c *fiber.Ctx) error {
	var review models.Review
	if db.DB.Preload("Customer").Preload("Service").
		Where("id = ? AND is_active = ?", c.Params("id"), true).First(&review).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Review not found")
	}
	return utils.Success(c, fiber.StatusOK, "Review fetched", review)
}

type ProviderResponseInput struct {
	Response string `json:"response"`
}

// RespondToReview lets the reviewed service's provider attach one public
// response to a review.
func RespondToReview(c *fiber.Ctx) error {
	input := new(ProviderResponseInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Response == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Response is required")
	}

	var review models.Review
	if db.DB.Preload("Service").
		Where("id = ? AND is_active = ?", c.Params("id"), true).First(&review).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Review not found")
	}
	if review.Service.ProviderID != middleware.UserID(c) {
		return utils.Error(c, fiber.StatusForbidden, "You can only respond to reviews of your own services")
	}

	now := time.Now()
	review.ProviderResponse = input.Response
	review.ProviderResponseAt = &now
	if err := db.DB.Save(&review).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save response")
	}
	return utils.Success(c, fiber.StatusOK, "Response saved", review)
}
