package models

import (
	"time"
)

// Registration is one pilot signup. Prices are whole COP; they are computed
// once at creation time and the QR payload is issued immediately and never
// rewritten afterwards.
type Registration struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	Nombre            string     `gorm:"size:100;not null" json:"nombre"`
	Apellido          string     `gorm:"size:100;not null" json:"apellido"`
	Cedula            string     `gorm:"size:30;not null;index" json:"cedula"`
	NumeroCompeticion string     `gorm:"size:20;not null" json:"numero_competicion"`
	Celular           string     `gorm:"size:20;not null" json:"celular"`
	Correo            string     `gorm:"size:255;not null;index" json:"correo"`
	Categorias        []string   `gorm:"serializer:json;not null" json:"categorias"`
	Liga              string     `gorm:"size:100" json:"liga,omitempty"`
	CodigoCupon       string     `gorm:"size:50" json:"codigo_cupon,omitempty"`
	PrecioBase        float64    `gorm:"not null" json:"precio_base"`
	Descuento         float64    `gorm:"not null;default:0" json:"descuento"`
	PrecioFinal       float64    `gorm:"not null" json:"precio_final"`
	Comision          float64    `gorm:"not null;default:0" json:"comision"`
	NetoEvento        float64    `gorm:"not null;default:0" json:"neto_evento"`
	EstadoPago        string     `gorm:"size:20;not null;index" json:"estado_pago"`
	PreferenceID      string     `gorm:"size:255;index" json:"preference_id,omitempty"`
	PaymentID         string     `gorm:"size:255" json:"payment_id,omitempty"`
	QRCode            string     `gorm:"type:text" json:"qr_code"`
	CheckIn           bool       `gorm:"not null;default:false;index" json:"check_in"`
	CheckInTime       *time.Time `json:"check_in_time,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"-"`
}

func (Registration) TableName() string {
	return "registrations"
}
