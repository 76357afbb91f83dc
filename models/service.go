package models

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/servenow/servenow-backend/utils"
)

type PricingType string

const (
	PricingFixed      PricingType = "FIXED"
	PricingHourly     PricingType = "HOURLY"
	PricingNegotiable PricingType = "NEGOTIABLE"
	PricingQuoteBased PricingType = "QUOTE_BASED"
	PricingPackage    PricingType = "PACKAGE"
)

func (p PricingType) Valid() bool {
	switch p {
	case PricingFixed, PricingHourly, PricingNegotiable, PricingQuoteBased, PricingPackage:
		return true
	}
	return false
}

type Service struct {
	Base
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	BasePrice   float64     `json:"base_price" gorm:"type:decimal(10,2);not null"`
	PricingType PricingType `json:"pricing_type" gorm:"default:FIXED"`
	PriceUnit   string      `json:"price_unit"`

	EstimatedDurationMinutes int  `json:"estimated_duration_minutes"`
	IsAvailable              bool `json:"is_available" gorm:"default:true"`
	IsFeatured               bool `json:"is_featured" gorm:"default:false"`

	Slug string `json:"slug" gorm:"unique"`

	// Denormalized rating aggregate, recomputed on every review write.
	AverageRating float64 `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews  int     `json:"total_reviews" gorm:"default:0"`
	TotalBookings int     `json:"total_bookings" gorm:"default:0"`

	ProviderID uint     `json:"provider_id" gorm:"not null"`
	Provider   User     `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	CategoryID uint     `json:"category_id" gorm:"not null"`
	Category   Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.PricingType == "" {
		s.PricingType = PricingFixed
	}
	if !s.PricingType.Valid() {
		return fmt.Errorf("invalid pricing type: %s", s.PricingType)
	}
	if s.Slug == "" {
		s.Slug = utils.Slugify(s.Title)
	}
	return nil
}

// RecomputeRating refreshes the denormalized aggregate from the review rows.
func (s *Service) RecomputeRating(tx *gorm.DB) error {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var agg aggregate
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(overall_rating), 0) AS avg, COUNT(*) AS count").
		Where("service_id = ? AND is_active = ?", s.ID, true).
		Scan(&agg).Error
	if err != nil {
		return err
	}
	return tx.Model(s).Updates(map[string]interface{}{
		"average_rating": agg.Avg,
		"total_reviews":  agg.Count,
	}).Error
}
