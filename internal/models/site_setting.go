package models

import (
	"time"
)

// SiteSetting stores admin-configurable site content as key/value pairs
// (hero texts, colors, contact info, gallery image URLs as JSON).
type SiteSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string { return "site_settings" }
