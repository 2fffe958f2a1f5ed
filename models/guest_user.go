package models

import "time"

// GuestUser is a short-lived anonymous session. Its ID keys the device-local
// cart record until the shopper signs in and the cart is merged.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
