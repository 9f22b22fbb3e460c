package models

import (
	"time"
)

// Coupon is a percentage discount code. Codes are stored uppercase and
// matched case-insensitively. UsosActuales only ever increments.
type Coupon struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Codigo        string    `gorm:"uniqueIndex;size:50;not null" json:"codigo"`
	TipoDescuento int       `gorm:"not null" json:"tipo_descuento"` // percent 0-100
	UsosMaximos   *int      `json:"usos_maximos,omitempty"`
	UsosActuales  int       `gorm:"not null;default:0" json:"usos_actuales"`
	Activo        bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Coupon) TableName() string { return "coupons" }

// Agotado reports whether the usage cap, if any, has been reached.
func (c *Coupon) Agotado() bool {
	return c.UsosMaximos != nil && c.UsosActuales >= *c.UsosMaximos
}
