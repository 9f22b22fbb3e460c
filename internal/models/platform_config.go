package models

import (
	"time"
)

// PlatformConfig is the singleton platform commission setup plus the
// platform's own fallback Mercado Pago credentials.
type PlatformConfig struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CommissionMode  string    `gorm:"size:20;not null;default:'percentage'" json:"commission_mode"` // percentage | fixed
	CommissionValue float64   `gorm:"not null;default:0" json:"commission_value"`
	MPAccessToken   string    `gorm:"size:255" json:"-"`
	MPPublicKey     string    `gorm:"size:255" json:"mp_public_key,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (PlatformConfig) TableName() string { return "platform_configs" }

// EventPaymentConfig holds the organizer's own gateway credentials for the
// single default event. When empty the platform fallback account is used.
type EventPaymentConfig struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MPAccessToken string    `gorm:"size:255" json:"-"`
	MPPublicKey   string    `gorm:"size:255" json:"mp_public_key,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (EventPaymentConfig) TableName() string { return "event_payment_configs" }
