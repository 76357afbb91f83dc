package models

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

type Review struct {
	Base
	BookingID  uint    `json:"booking_id" gorm:"unique;not null"`
	Booking    Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	ServiceID  uint    `json:"service_id" gorm:"not null"`
	Service    Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	CustomerID uint    `json:"customer_id" gorm:"not null"`
	Customer   User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	OverallRating       float64 `json:"overall_rating" gorm:"type:decimal(2,1);not null"`
	QualityRating       float64 `json:"quality_rating" gorm:"type:decimal(2,1)"`
	CommunicationRating float64 `json:"communication_rating" gorm:"type:decimal(2,1)"`
	PunctualityRating   float64 `json:"punctuality_rating" gorm:"type:decimal(2,1)"`
	ValueRating         float64 `json:"value_rating" gorm:"type:decimal(2,1)"`

	Title   string `json:"title"`
	Comment string `json:"comment"`

	ProviderResponse   string     `json:"provider_response"`
	ProviderResponseAt *time.Time `json:"provider_response_at"`
}

// Ratings carry one decimal place between 1.0 and 5.0.
func validRating(r float64) bool {
	if r < 1.0 || r > 5.0 {
		return false
	}
	return math.Abs(r*10-math.Round(r*10)) < 1e-9
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if !validRating(r.OverallRating) {
		return fmt.Errorf("overall rating must be between 1.0 and 5.0 with one decimal place")
	}
	// Detail ratings default to the overall rating when omitted.
	if r.QualityRating == 0 {
		r.QualityRating = r.OverallRating
	}
	if r.CommunicationRating == 0 {
		r.CommunicationRating = r.OverallRating
	}
	if r.PunctualityRating == 0 {
		r.PunctualityRating = r.OverallRating
	}
	if r.ValueRating == 0 {
		r.ValueRating = r.OverallRating
	}
	for _, detail := range []float64{r.QualityRating, r.CommunicationRating, r.PunctualityRating, r.ValueRating} {
		if !validRating(detail) {
			return fmt.Errorf("detailed ratings must be between 1.0 and 5.0 with one decimal place")
		}
	}
	return nil
}

func (r *Review) HasProviderResponse() bool {
	return r.ProviderResponse != ""
}
