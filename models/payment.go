package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentAuthorized        PaymentStatus = "AUTHORIZED"
	PaymentCaptured          PaymentStatus = "CAPTURED"
	PaymentCompleted         PaymentStatus = "COMPLETED"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentCancelled         PaymentStatus = "CANCELLED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

type PaymentMethod string

const (
	MethodCreditCard    PaymentMethod = "CREDIT_CARD"
	MethodDebitCard     PaymentMethod = "DEBIT_CARD"
	MethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	MethodDigitalWallet PaymentMethod = "DIGITAL_WALLET"
	MethodCash          PaymentMethod = "CASH"
)

// Fee rules applied at creation. Processing: 2.9% + 2.00 flat,
// platform: 5% of the gross amount.
const (
	processingFeeRate = 0.029
	processingFeeFlat = 2.00
	platformFeeRate   = 0.05
)

// Payment is a passive ledger row tied one-to-one to a booking. Nothing
// in the booking lifecycle reads or triggers it.
type Payment struct {
	Base
	BookingID uint    `json:"booking_id" gorm:"unique;not null"`
	Booking   Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`

	Amount   float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency string        `json:"currency" gorm:"default:INR"`
	Status   PaymentStatus `json:"status" gorm:"not null;default:PENDING"`
	Method   PaymentMethod `json:"method" gorm:"not null"`

	TransactionRef string `json:"transaction_ref" gorm:"unique"`

	ProcessingFee  float64 `json:"processing_fee" gorm:"type:decimal(10,2)"`
	PlatformFee    float64 `json:"platform_fee" gorm:"type:decimal(10,2)"`
	NetAmount      float64 `json:"net_amount" gorm:"type:decimal(10,2)"`
	ProviderAmount float64 `json:"provider_amount" gorm:"type:decimal(10,2)"`

	AuthorizedAt *time.Time `json:"authorized_at"`
	CapturedAt   *time.Time `json:"captured_at"`
	FailedAt     *time.Time `json:"failed_at"`
	RefundedAt   *time.Time `json:"refunded_at"`

	Description string `json:"description"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentPending
	}
	if p.TransactionRef == "" {
		p.TransactionRef = uuid.NewString()
	}
	if p.ProcessingFee == 0 {
		p.ProcessingFee = round2(p.Amount*processingFeeRate + processingFeeFlat)
	}
	if p.PlatformFee == 0 {
		p.PlatformFee = round2(p.Amount * platformFeeRate)
	}
	if p.NetAmount == 0 {
		p.NetAmount = round2(p.Amount - p.ProcessingFee)
	}
	if p.ProviderAmount == 0 {
		p.ProviderAmount = round2(p.NetAmount - p.PlatformFee)
	}
	return nil
}

func (p *Payment) IsSuccessful() bool {
	return p.Status == PaymentCompleted || p.Status == PaymentCaptured
}
