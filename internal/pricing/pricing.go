// Package pricing computes registration prices: base price per selected
// category, a time-of-year phase multiplier and an optional coupon discount.
// Everything here is pure read-and-compute; coupon usage counting happens in
// the registration flow.
package pricing

import (
	"time"

	"supergp/internal/domain"
	"supergp/internal/models"
)

// CouponFinder resolves an active coupon by code (case-insensitive).
// A not-found result must come back as an error.
type CouponFinder interface {
	FindActive(code string) (*models.Coupon, error)
}

type Quote struct {
	PrecioBase      float64 `json:"precio_base"`
	Descuento       float64 `json:"descuento"`
	PrecioFinal     float64 `json:"precio_final"`
	Fase            string  `json:"fase_actual"`
	DiscountPercent int     `json:"tipo_descuento,omitempty"`
}

// Phase returns the pricing phase for a point in time. January is presale
// (0.85x), March onward is late registration (1.2x); February stays ordinary
// with no adjustment.
func Phase(now time.Time) string {
	switch {
	case now.Month() == time.January:
		return domain.FasePreventa
	case now.Month() >= time.March:
		return domain.FaseExtraordinaria
	default:
		return domain.FaseOrdinaria
	}
}

func phaseMultiplier(fase string) float64 {
	switch fase {
	case domain.FasePreventa:
		return 0.85
	case domain.FaseExtraordinaria:
		return 1.2
	default:
		return 1.0
	}
}

// Calculate prices a non-empty category selection against a price-table
// snapshot. Categories absent from the table get the default price. A coupon
// code that does not resolve to an active coupon is silently ignored here;
// the standalone validate endpoint is the one that errors on bad codes.
func Calculate(categorias []string, codigoCupon string, precios map[string]float64, now time.Time, cupones CouponFinder) Quote {
	base := 0.0
	for _, cat := range categorias {
		if p, ok := precios[cat]; ok {
			base += p
		} else {
			base += domain.DefaultCategoryPrice
		}
	}

	fase := Phase(now)
	base *= phaseMultiplier(fase)

	q := Quote{PrecioBase: base, Fase: fase}
	if codigoCupon != "" && cupones != nil {
		if c, err := cupones.FindActive(codigoCupon); err == nil && c != nil {
			q.DiscountPercent = c.TipoDescuento
			q.Descuento = base * float64(c.TipoDescuento) / 100
		}
	}
	// The discount can never push the final price below zero, whatever
	// percentage is stored on the coupon row.
	if q.Descuento > base {
		q.Descuento = base
	}
	if q.Descuento < 0 {
		q.Descuento = 0
	}
	q.PrecioFinal = q.PrecioBase - q.Descuento
	return q
}
