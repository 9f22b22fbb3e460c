package pricing

import (
	"math"

	"supergp/internal/domain"
)

// Split divides a final price between the platform and the event organizer.
// The commission is clamped so it can never exceed the payment, and it is
// rounded to whole pesos (half away from zero); the net is derived from the
// rounded commission so comision + neto == precioFinal always holds. When the
// phase multiplier leaves precioFinal itself fractional, that fraction stays
// on the organizer's side rather than breaking the sum.
func Split(precioFinal float64, mode string, value float64) (comision, neto float64) {
	switch mode {
	case domain.CommissionFixed:
		comision = value
	case domain.CommissionPercentage:
		comision = precioFinal * value / 100
	default:
		comision = 0
	}
	comision = math.Round(comision)
	if comision > precioFinal {
		comision = math.Floor(precioFinal)
	}
	if comision < 0 {
		comision = 0
	}
	neto = precioFinal - comision
	return comision, neto
}
