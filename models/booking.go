package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingRequested  BookingStatus = "REQUESTED"
	BookingAccepted   BookingStatus = "ACCEPTED"
	BookingRejected   BookingStatus = "REJECTED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "CUSTOMER"
	CancelledByProvider CancelledBy = "PROVIDER"
	CancelledByAdmin    CancelledBy = "ADMIN"
	CancelledBySystem   CancelledBy = "SYSTEM"
)

type Booking struct {
	Base
	ServiceID  uint    `json:"service_id" gorm:"not null"`
	Service    Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	CustomerID uint    `json:"customer_id" gorm:"not null"`
	Customer   User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	// Copied from service.ProviderID at creation so provider-side listings
	// do not join through services. Must always match the service row.
	ProviderID uint `json:"provider_id" gorm:"not null"`
	Provider   User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`

	Status BookingStatus `json:"status" gorm:"not null;default:REQUESTED"`

	ScheduledAt              time.Time  `json:"scheduled_at" gorm:"not null"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes"`
	ActualStartTime          *time.Time `json:"actual_start_time"`
	ActualEndTime            *time.Time `json:"actual_end_time"`

	QuotedPrice float64 `json:"quoted_price" gorm:"type:decimal(10,2)"`
	FinalPrice  float64 `json:"final_price" gorm:"type:decimal(10,2)"`
	Currency    string  `json:"currency" gorm:"default:INR"`

	ServiceAddress string `json:"service_address"`
	CustomerNotes  string `json:"customer_notes"`
	ProviderNotes  string `json:"provider_notes"`

	RequestedAt *time.Time `json:"requested_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CancellationReason string      `json:"cancellation_reason"`
	CancelledBy        CancelledBy `json:"cancelled_by"`

	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
	Review  *Review  `json:"review,omitempty" gorm:"foreignKey:BookingID"`
}

func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCompleted || b.Status == BookingRejected || b.Status == BookingCancelled
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BookingRequested
	}
	if b.RequestedAt == nil {
		now := time.Now()
		b.RequestedAt = &now
	}
	return nil
}

func invalidTransition(action string, current BookingStatus) error {
	return fmt.Errorf("booking cannot be %s in current status: %s", action, current)
}

// Accept moves REQUESTED -> ACCEPTED.
func (b *Booking) Accept(tx *gorm.DB) error {
	if b.Status != BookingRequested {
		return invalidTransition("accepted", b.Status)
	}
	now := time.Now()
	b.Status = BookingAccepted
	b.AcceptedAt = &now
	return tx.Save(b).Error
}

// Reject moves REQUESTED -> REJECTED and records the provider's reason.
func (b *Booking) Reject(tx *gorm.DB, reason string) error {
	if b.Status != BookingRequested {
		return invalidTransition("rejected", b.Status)
	}
	now := time.Now()
	b.Status = BookingRejected
	b.RejectedAt = &now
	b.CancellationReason = reason
	b.CancelledBy = CancelledByProvider
	return tx.Save(b).Error
}

// Start moves ACCEPTED -> IN_PROGRESS and stamps the actual start time.
func (b *Booking) Start(tx *gorm.DB) error {
	if b.Status != BookingAccepted {
		return invalidTransition("started", b.Status)
	}
	now := time.Now()
	b.Status = BookingInProgress
	b.StartedAt = &now
	b.ActualStartTime = &now
	return tx.Save(b).Error
}

// Complete moves IN_PROGRESS -> COMPLETED. It also accepts ACCEPTED
// directly for providers that never report an explicit start, backfilling
// the start time so the duration stays well defined.
func (b *Booking) Complete(tx *gorm.DB) error {
	if b.Status != BookingInProgress && b.Status != BookingAccepted {
		return invalidTransition("completed", b.Status)
	}
	now := time.Now()
	if b.ActualStartTime == nil {
		b.ActualStartTime = &now
		b.StartedAt = &now
	}
	b.Status = BookingCompleted
	b.CompletedAt = &now
	b.ActualEndTime = &now
	if b.FinalPrice == 0 {
		b.FinalPrice = b.QuotedPrice
	}
	return tx.Save(b).Error
}

// Cancel moves REQUESTED or ACCEPTED -> CANCELLED, recording who did it.
func (b *Booking) Cancel(tx *gorm.DB, by CancelledBy, reason string) error {
	if b.Status != BookingRequested && b.Status != BookingAccepted {
		return invalidTransition("cancelled", b.Status)
	}
	now := time.Now()
	b.Status = BookingCancelled
	b.CancelledAt = &now
	b.CancelledBy = by
	b.CancellationReason = reason
	return tx.Save(b).Error
}

// ActualDurationMinutes is derived from the recorded start and end times.
func (b *Booking) ActualDurationMinutes() int {
	if b.ActualStartTime == nil || b.ActualEndTime == nil {
		return 0
	}
	return int(b.ActualEndTime.Sub(*b.ActualStartTime).Minutes())
}
