package models

import (
	"time"
)

type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Titulo    string    `gorm:"size:255;not null" json:"titulo"`
	Contenido string    `gorm:"type:text;not null" json:"contenido"`
	ImagenURL string    `gorm:"size:512" json:"imagen_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (News) TableName() string { return "news" }
