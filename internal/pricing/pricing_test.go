package pricing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"supergp/internal/domain"
	"supergp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCoupons struct {
	coupons map[string]*models.Coupon
}

func (f *fakeCoupons) FindActive(code string) (*models.Coupon, error) {
	if c, ok := f.coupons[strings.ToUpper(code)]; ok && c.Activo {
		return c, nil
	}
	return nil, errors.New("record not found")
}

func date(month time.Month) time.Time {
	return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
}

var table = map[string]float64{
	"INFANTIL":    100000,
	"115cc Elite": 100000,
	"SuperMoto":   120000,
}

func TestCalculateOrdinariaNoCoupon(t *testing.T) {
	q := Calculate([]string{"INFANTIL"}, "", table, date(time.June), nil)
	assert.Equal(t, domain.FaseExtraordinaria, q.Fase) // June is month >= 3
	q = Calculate([]string{"INFANTIL"}, "", table, date(time.February), nil)
	assert.Equal(t, domain.FaseOrdinaria, q.Fase)
	assert.Equal(t, 100000.0, q.PrecioBase)
	assert.Equal(t, 0.0, q.Descuento)
	assert.Equal(t, q.PrecioBase, q.PrecioFinal)
}

func TestCalculatePreventa(t *testing.T) {
	q := Calculate([]string{"INFANTIL"}, "", table, date(time.January), nil)
	assert.Equal(t, domain.FasePreventa, q.Fase)
	assert.Equal(t, 85000.0, q.PrecioBase)
	assert.Equal(t, 85000.0, q.PrecioFinal)
}

func TestCalculateExtraordinaria(t *testing.T) {
	q := Calculate([]string{"INFANTIL"}, "", table, date(time.March), nil)
	assert.Equal(t, domain.FaseExtraordinaria, q.Fase)
	assert.InDelta(t, 120000.0, q.PrecioBase, 0.001)
}

func TestFebruaryBoundaryIsOrdinaria(t *testing.T) {
	assert.Equal(t, domain.FaseOrdinaria, Phase(date(time.February)))
	assert.Equal(t, domain.FasePreventa, Phase(date(time.January)))
	assert.Equal(t, domain.FaseExtraordinaria, Phase(date(time.March)))
	assert.Equal(t, domain.FaseExtraordinaria, Phase(date(time.December)))
}

func TestCalculateSumsCategoriesWithDefault(t *testing.T) {
	q := Calculate([]string{"INFANTIL", "SuperMoto", "Categoria Desconocida"}, "", table, date(time.February), nil)
	assert.Equal(t, 100000.0+120000.0+domain.DefaultCategoryPrice, q.PrecioBase)
}

func TestCalculateWithCoupon(t *testing.T) {
	cupones := &fakeCoupons{coupons: map[string]*models.Coupon{
		"SAVE30": {Codigo: "SAVE30", TipoDescuento: 30, Activo: true},
	}}
	q := Calculate([]string{"INFANTIL"}, "save30", table, date(time.February), cupones)
	require.Equal(t, 100000.0, q.PrecioBase)
	assert.Equal(t, 30, q.DiscountPercent)
	assert.Equal(t, 30000.0, q.Descuento)
	assert.Equal(t, 70000.0, q.PrecioFinal)
}

func TestCalculateUnknownCouponSilentlyIgnored(t *testing.T) {
	cupones := &fakeCoupons{coupons: map[string]*models.Coupon{}}
	q := Calculate([]string{"INFANTIL"}, "NOPE", table, date(time.February), cupones)
	assert.Equal(t, 0.0, q.Descuento)
	assert.Equal(t, q.PrecioBase, q.PrecioFinal)
	assert.Zero(t, q.DiscountPercent)
}

func TestCalculateInactiveCouponIgnored(t *testing.T) {
	cupones := &fakeCoupons{coupons: map[string]*models.Coupon{
		"OLD": {Codigo: "OLD", TipoDescuento: 50, Activo: false},
	}}
	q := Calculate([]string{"INFANTIL"}, "OLD", table, date(time.February), cupones)
	assert.Equal(t, 0.0, q.Descuento)
}

func TestCalculateDiscountNeverExceedsBase(t *testing.T) {
	// A coupon row edited to an out-of-range percentage must not produce a
	// negative final price.
	cupones := &fakeCoupons{coupons: map[string]*models.Coupon{
		"MEGA": {Codigo: "MEGA", TipoDescuento: 150, Activo: true},
	}}
	q := Calculate([]string{"INFANTIL"}, "MEGA", table, date(time.February), cupones)
	assert.Equal(t, 100000.0, q.PrecioBase)
	assert.LessOrEqual(t, q.Descuento, q.PrecioBase)
	assert.Equal(t, 100000.0, q.Descuento)
	assert.Equal(t, 0.0, q.PrecioFinal)
}

func TestCalculateNegativeDiscountIgnored(t *testing.T) {
	cupones := &fakeCoupons{coupons: map[string]*models.Coupon{
		"NEG": {Codigo: "NEG", TipoDescuento: -20, Activo: true},
	}}
	q := Calculate([]string{"INFANTIL"}, "NEG", table, date(time.February), cupones)
	assert.Equal(t, 0.0, q.Descuento)
	assert.Equal(t, q.PrecioBase, q.PrecioFinal)
}

func TestCalculateCouponAppliesAfterPhase(t *testing.T) {
	cupones := &fakeCoupons{coupons: map[string]*models.Coupon{
		"HALF": {Codigo: "HALF", TipoDescuento: 50, Activo: true},
	}}
	q := Calculate([]string{"INFANTIL"}, "HALF", table, date(time.January), cupones)
	assert.Equal(t, 85000.0, q.PrecioBase)
	assert.Equal(t, 42500.0, q.Descuento)
	assert.Equal(t, 42500.0, q.PrecioFinal)
}
