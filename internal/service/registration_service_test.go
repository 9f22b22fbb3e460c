package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"supergp/config"
	"supergp/internal/domain"
	"supergp/internal/models"
	"supergp/internal/qrtoken"
	"supergp/logging"
	"supergp/pkg/gateway"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRegStore struct {
	regs map[string]*models.Registration
}

func newFakeRegStore() *fakeRegStore {
	return &fakeRegStore{regs: make(map[string]*models.Registration)}
}

func (f *fakeRegStore) Create(reg *models.Registration) error {
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeRegStore) GetByID(id string) (*models.Registration, error) {
	if r, ok := f.regs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegStore) Update(reg *models.Registration) error {
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeRegStore) MarkCheckIn(id string, t time.Time) (bool, error) {
	r, ok := f.regs[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if r.EstadoPago != domain.EstadoCompletado || r.CheckIn {
		return false, nil
	}
	r.CheckIn = true
	r.CheckInTime = &t
	return true, nil
}

type fakeCouponStore struct {
	coupons    map[string]*models.Coupon
	increments map[string]int
}

func newFakeCouponStore() *fakeCouponStore {
	return &fakeCouponStore{coupons: make(map[string]*models.Coupon), increments: make(map[string]int)}
}

func (f *fakeCouponStore) FindActive(code string) (*models.Coupon, error) {
	c, ok := f.coupons[strings.ToUpper(code)]
	if !ok || !c.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCouponStore) IncrementUsage(code string) error {
	code = strings.ToUpper(code)
	f.increments[code]++
	if c, ok := f.coupons[code]; ok {
		c.UsosActuales++
	}
	return nil
}

type fakePriceStore struct {
	prices map[string]float64
}

func (f *fakePriceStore) PriceMap() (map[string]float64, error) {
	return f.prices, nil
}

type fakeConfigStore struct {
	platform *models.PlatformConfig
	event    *models.EventPaymentConfig
}

func (f *fakeConfigStore) Platform() (*models.PlatformConfig, error) {
	return f.platform, nil
}

func (f *fakeConfigStore) EventPayment() (*models.EventPaymentConfig, error) {
	return f.event, nil
}

type fakeGateway struct {
	payments    map[string]*gateway.Payment
	byReference map[string][]gateway.Payment
	preference  *gateway.Preference
	prefCalls   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		payments:    make(map[string]*gateway.Payment),
		byReference: make(map[string][]gateway.Payment),
		preference:  &gateway.Preference{ID: "pref-1", InitPoint: "https://mp.example/checkout/pref-1"},
	}
}

func (f *fakeGateway) CreatePreference(ctx context.Context, token string, req gateway.PreferenceRequest) (*gateway.Preference, error) {
	f.prefCalls++
	return f.preference, nil
}

func (f *fakeGateway) GetPayment(ctx context.Context, token, paymentID string) (*gateway.Payment, error) {
	if p, ok := f.payments[paymentID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGateway) SearchByReference(ctx context.Context, token, ref string) ([]gateway.Payment, error) {
	return f.byReference[ref], nil
}

type fakeMailer struct {
	sent []string // recipient per dispatch
}

func (f *fakeMailer) Send(to, subject, html string, cc ...string) bool {
	f.sent = append(f.sent, to)
	return true
}

type fixture struct {
	svc     *RegistrationService
	regs    *fakeRegStore
	cupones *fakeCouponStore
	gw      *fakeGateway
	mail    *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logging.Log = logrus.New()
	cfg := config.Load()
	regs := newFakeRegStore()
	cupones := newFakeCouponStore()
	precios := &fakePriceStore{prices: map[string]float64{
		"INFANTIL":    100000,
		"115cc Elite": 100000,
		"SuperMoto":   120000,
	}}
	configs := &fakeConfigStore{
		platform: &models.PlatformConfig{CommissionMode: domain.CommissionPercentage, CommissionValue: 5, MPAccessToken: "platform-token"},
		event:    &models.EventPaymentConfig{},
	}
	gw := newFakeGateway()
	mail := &fakeMailer{}
	svc := NewRegistrationService(cfg, regs, cupones, precios, configs, gw, mail)
	// pin to an ordinary-phase month so prices carry no multiplier
	svc.now = func() time.Time { return time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, regs: regs, cupones: cupones, gw: gw, mail: mail}
}

func createReq(categorias ...string) CreateRequest {
	return CreateRequest{
		Nombre:            "Juan",
		Apellido:          "Gomez",
		Cedula:            "1061234567",
		NumeroCompeticion: "27",
		Celular:           "3001234567",
		Correo:            "juan@example.com",
		Categorias:        categorias,
	}
}

func TestCreateNoCoupon(t *testing.T) {
	f := newFixture(t)
	reg, err := f.svc.Create(createReq("INFANTIL"))
	require.NoError(t, err)
	assert.Equal(t, 100000.0, reg.PrecioBase)
	assert.Equal(t, 0.0, reg.Descuento)
	assert.Equal(t, reg.PrecioBase, reg.PrecioFinal)
	assert.Equal(t, domain.EstadoPendiente, reg.EstadoPago)
	assert.NotEmpty(t, reg.ID)
	assert.Empty(t, f.mail.sent, "pending registration must not trigger email")
}

func TestCreateIssuesVerifiableQR(t *testing.T) {
	f := newFixture(t)
	reg, err := f.svc.Create(createReq("INFANTIL"))
	require.NoError(t, err)
	ok, id := qrtoken.Verify(reg.QRCode, f.svc.cfg.QR.Secret)
	require.True(t, ok)
	assert.Equal(t, reg.ID, id)
}

func TestCreateEmptyCategoriesRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(createReq())
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestCreateWithCouponIncrementsUsageOnce(t *testing.T) {
	f := newFixture(t)
	f.cupones.coupons["SAVE30"] = &models.Coupon{Codigo: "SAVE30", TipoDescuento: 30, Activo: true}

	req := createReq("INFANTIL")
	req.CodigoCupon = "save30"
	reg, err := f.svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, reg.Descuento)
	assert.Equal(t, 70000.0, reg.PrecioFinal)
	assert.Equal(t, 1, f.cupones.increments["SAVE30"])
}

func TestCreateUnknownCouponSilent(t *testing.T) {
	f := newFixture(t)
	req := createReq("INFANTIL")
	req.CodigoCupon = "NOPE"
	reg, err := f.svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reg.Descuento)
	assert.Equal(t, reg.PrecioBase, reg.PrecioFinal)
	assert.Zero(t, f.cupones.increments["NOPE"], "unused coupon must not be counted")

	// The standalone validation op errors on the very same code.
	_, err = f.svc.ValidateCoupon("NOPE")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateCouponExhausted(t *testing.T) {
	f := newFixture(t)
	max := 2
	f.cupones.coupons["FULL"] = &models.Coupon{Codigo: "FULL", TipoDescuento: 10, Activo: true, UsosMaximos: &max, UsosActuales: 2}
	_, err := f.svc.ValidateCoupon("FULL")
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestCreateFreeRegistrationCompletesImmediately(t *testing.T) {
	f := newFixture(t)
	f.cupones.coupons["GRATIS"] = &models.Coupon{Codigo: "GRATIS", TipoDescuento: 100, Activo: true}

	req := createReq("INFANTIL")
	req.CodigoCupon = "GRATIS"
	reg, err := f.svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reg.PrecioFinal)
	assert.Equal(t, domain.EstadoCompletado, reg.EstadoPago)
	assert.Len(t, f.mail.sent, 1, "free registration sends confirmation immediately")
	assert.Equal(t, 0, f.gw.prefCalls, "no gateway interaction for free registration")
}

func TestCreateOversizedDiscountClampsToFree(t *testing.T) {
	f := newFixture(t)
	f.cupones.coupons["MEGA"] = &models.Coupon{Codigo: "MEGA", TipoDescuento: 150, Activo: true}

	req := createReq("INFANTIL")
	req.CodigoCupon = "MEGA"
	reg, err := f.svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, reg.PrecioBase, reg.Descuento)
	assert.Equal(t, 0.0, reg.PrecioFinal)
	assert.Equal(t, domain.EstadoCompletado, reg.EstadoPago)
	assert.Len(t, f.mail.sent, 1)
}

func TestWebhookApprovedCompletesAndSplits(t *testing.T) {
	f := newFixture(t)
	reg, err := f.svc.Create(createReq("INFANTIL"))
	require.NoError(t, err)
	f.gw.payments["777"] = &gateway.Payment{ID: 777, Status: gateway.StatusApproved, ExternalReference: reg.ID}

	require.NoError(t, f.svc.HandleGatewayNotification(context.Background(), "777"))

	got, err := f.svc.Get(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoCompletado, got.EstadoPago)
	assert.Equal(t, "777", got.PaymentID)
	assert.Equal(t, 5000.0, got.Comision)
	assert.Equal(t, 95000.0, got.NetoEvento)
	assert.Equal(t, got.PrecioFinal, got.Comision+got.NetoEvento)
	assert.Len(t, f.mail.sent, 1)
}

func TestWebhookIdempotent(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))
	f.gw.payments["777"] = &gateway.Payment{ID: 777, Status: gateway.StatusApproved, ExternalReference: reg.ID}

	require.NoError(t, f.svc.HandleGatewayNotification(context.Background(), "777"))
	require.NoError(t, f.svc.HandleGatewayNotification(context.Background(), "777"))
	assert.Len(t, f.mail.sent, 1, "re-confirming must not resend the email")
}

func TestWebhookNonApprovedIgnored(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))
	f.gw.payments["888"] = &gateway.Payment{ID: 888, Status: "rejected", ExternalReference: reg.ID}

	require.NoError(t, f.svc.HandleGatewayNotification(context.Background(), "888"))
	got, _ := f.svc.Get(reg.ID)
	assert.Equal(t, domain.EstadoPendiente, got.EstadoPago)
	assert.Empty(t, f.mail.sent)
}

func TestVerifyPaymentPollCompletes(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))
	f.gw.byReference[reg.ID] = []gateway.Payment{
		{ID: 1, Status: "rejected", ExternalReference: reg.ID},
		{ID: 2, Status: gateway.StatusApproved, ExternalReference: reg.ID},
	}

	_, err := f.svc.VerifyPayment(context.Background(), reg.ID)
	require.NoError(t, err)
	got, _ := f.svc.Get(reg.ID)
	assert.Equal(t, domain.EstadoCompletado, got.EstadoPago)
	assert.Equal(t, "2", got.PaymentID)
}

func TestCompleteManuallyIdempotent(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))

	_, err := f.svc.CompleteManually(reg.ID)
	require.NoError(t, err)
	_, err = f.svc.CompleteManually(reg.ID)
	require.NoError(t, err)
	assert.Len(t, f.mail.sent, 1)
}

func TestCreatePreferenceStoresID(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))

	pref, err := f.svc.CreatePreference(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "pref-1", pref.ID)
	got, _ := f.svc.Get(reg.ID)
	assert.Equal(t, "pref-1", got.PreferenceID)
}

func TestCheckInRequiresCompleted(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))
	_, err := f.svc.CheckIn(reg.ID)
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestCheckInIdempotent(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))
	_, err := f.svc.CompleteManually(reg.ID)
	require.NoError(t, err)

	first, err := f.svc.CheckIn(reg.ID)
	require.NoError(t, err)
	require.NotNil(t, first.CheckInTime)
	stamp := *first.CheckInTime

	_, err = f.svc.CheckIn(reg.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	got, _ := f.svc.Get(reg.ID)
	require.NotNil(t, got.CheckInTime)
	assert.Equal(t, stamp, *got.CheckInTime, "second attempt must not alter check_in_time")
}

func TestScanPreview(t *testing.T) {
	f := newFixture(t)
	reg, _ := f.svc.Create(createReq("INFANTIL"))

	res, err := f.svc.ScanPreview(reg.QRCode)
	require.NoError(t, err)
	assert.False(t, res.CanCheckIn, "pending registration cannot check in")

	_, err = f.svc.CompleteManually(reg.ID)
	require.NoError(t, err)
	res, err = f.svc.ScanPreview(reg.QRCode)
	require.NoError(t, err)
	assert.True(t, res.CanCheckIn)

	_, err = f.svc.CheckIn(reg.ID)
	require.NoError(t, err)
	res, err = f.svc.ScanPreview(reg.QRCode)
	require.NoError(t, err)
	assert.False(t, res.CanCheckIn, "already checked in")
}

func TestScanPreviewRejectsForgedPayload(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ScanPreview("garbage")
	assert.ErrorIs(t, err, ErrInvalidQR)

	reg, _ := f.svc.Create(createReq("INFANTIL"))
	forged := qrtoken.Issue(reg.ID, "wrong-secret")
	_, err = f.svc.ScanPreview(forged)
	assert.ErrorIs(t, err, ErrInvalidQR)
}

func TestQuoteJanuaryPreventa(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC) }
	q, err := f.svc.Quote([]string{"INFANTIL"}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.FasePreventa, q.Fase)
	assert.Equal(t, 85000.0, q.PrecioBase)
}
