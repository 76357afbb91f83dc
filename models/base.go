package models

import (
	"time"
)

// Base holds the identity and audit columns shared by every table.
// Rows are soft-deleted by flipping IsActive instead of removing them,
// so bookings and reviews keep valid references to retired records.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
