package models

import (
	"time"
)

// CategoryPrice maps a racing category name to its registration price in COP.
// Posicion keeps the public listing order stable.
type CategoryPrice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"uniqueIndex;size:191;not null" json:"nombre"`
	Precio    float64   `gorm:"not null" json:"precio"`
	Posicion  int       `gorm:"not null;default:0" json:"posicion"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CategoryPrice) TableName() string { return "category_prices" }

// CategoryGroup collects categories under a section heading
// (VELOCIDAD TOP, KARTS, MOTOCROSS, ...).
type CategoryGroup struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nombre     string    `gorm:"uniqueIndex;size:100;not null" json:"nombre"`
	Categorias []string  `gorm:"serializer:json" json:"categorias"`
	Posicion   int       `gorm:"not null;default:0" json:"posicion"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CategoryGroup) TableName() string { return "category_groups" }
