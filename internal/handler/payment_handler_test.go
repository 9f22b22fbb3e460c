package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supergp/config"
	"supergp/internal/domain"
	"supergp/internal/models"
	"supergp/internal/service"
	"supergp/logging"
	"supergp/pkg/gateway"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memRegs struct {
	regs map[string]*models.Registration
}

func (m *memRegs) Create(reg *models.Registration) error {
	cp := *reg
	m.regs[reg.ID] = &cp
	return nil
}

func (m *memRegs) GetByID(id string) (*models.Registration, error) {
	if r, ok := m.regs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRegs) Update(reg *models.Registration) error {
	cp := *reg
	m.regs[reg.ID] = &cp
	return nil
}

func (m *memRegs) MarkCheckIn(id string, t time.Time) (bool, error) {
	return false, nil
}

type memCoupons struct{}

func (memCoupons) FindActive(code string) (*models.Coupon, error) {
	return nil, gorm.ErrRecordNotFound
}
func (memCoupons) IncrementUsage(code string) error { return nil }

type memPrices struct{}

func (memPrices) PriceMap() (map[string]float64, error) {
	return map[string]float64{"INFANTIL": 100000}, nil
}

type memConfigs struct{}

func (memConfigs) Platform() (*models.PlatformConfig, error) {
	return &models.PlatformConfig{CommissionMode: domain.CommissionPercentage, CommissionValue: 5, MPAccessToken: "tok"}, nil
}
func (memConfigs) EventPayment() (*models.EventPaymentConfig, error) {
	return &models.EventPaymentConfig{}, nil
}

type memGateway struct {
	payments map[string]*gateway.Payment
}

func (m *memGateway) CreatePreference(ctx context.Context, token string, req gateway.PreferenceRequest) (*gateway.Preference, error) {
	return &gateway.Preference{ID: "pref-1"}, nil
}

func (m *memGateway) GetPayment(ctx context.Context, token, id string) (*gateway.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memGateway) SearchByReference(ctx context.Context, token, ref string) ([]gateway.Payment, error) {
	return nil, nil
}

type memMailer struct{ count int }

func (m *memMailer) Send(to, subject, html string, cc ...string) bool {
	m.count++
	return true
}

func newWebhookFixture(t *testing.T) (*gin.Engine, *memRegs, *memGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.Log = logrus.New()
	regs := &memRegs{regs: make(map[string]*models.Registration)}
	gw := &memGateway{payments: make(map[string]*gateway.Payment)}
	svc := service.NewRegistrationService(config.Load(), regs, memCoupons{}, memPrices{}, memConfigs{}, gw, &memMailer{})
	h := NewPaymentHandler(svc)
	r := gin.New()
	r.POST("/api/v1/webhooks/mercadopago", h.Webhook)
	return r, regs, gw
}

func postWebhook(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookAlwaysAcknowledges(t *testing.T) {
	r, _, _ := newWebhookFixture(t)

	// malformed body
	assert.Equal(t, http.StatusOK, postWebhook(r, []byte("not json")).Code)
	// irrelevant event type
	assert.Equal(t, http.StatusOK, postWebhook(r, []byte(`{"type":"merchant_order","data":{"id":"1"}}`)).Code)
	// unknown payment id
	assert.Equal(t, http.StatusOK, postWebhook(r, []byte(`{"type":"payment","data":{"id":"999"}}`)).Code)
}

func TestWebhookCompletesRegistration(t *testing.T) {
	r, regs, gw := newWebhookFixture(t)
	regs.regs["reg-1"] = &models.Registration{
		ID:          "reg-1",
		Correo:      "pilot@example.com",
		PrecioFinal: 100000,
		EstadoPago:  domain.EstadoPendiente,
	}
	gw.payments["555"] = &gateway.Payment{ID: 555, Status: gateway.StatusApproved, ExternalReference: "reg-1"}

	body, _ := json.Marshal(gin.H{"type": "payment", "data": gin.H{"id": "555"}})
	w := postWebhook(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	got := regs.regs["reg-1"]
	assert.Equal(t, domain.EstadoCompletado, got.EstadoPago)
	assert.Equal(t, "555", got.PaymentID)
	assert.Equal(t, 5000.0, got.Comision)
	assert.Equal(t, 95000.0, got.NetoEvento)
}
