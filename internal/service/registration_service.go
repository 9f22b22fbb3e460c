package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"supergp/config"
	"supergp/internal/domain"
	"supergp/internal/models"
	"supergp/internal/pricing"
	"supergp/internal/qrtoken"
	"supergp/logging"
	"supergp/pkg/gateway"
	"supergp/pkg/mailer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoCategories         = errors.New("at least one category is required")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrCouponNotFound       = errors.New("coupon not found or inactive")
	ErrCouponExhausted      = errors.New("coupon usage cap reached")
	ErrInvalidQR            = errors.New("invalid qr code")
	ErrNotCompleted         = errors.New("registration payment not completed")
	ErrAlreadyCheckedIn     = errors.New("registration already checked in")
	ErrNoGatewayCredentials = errors.New("no payment gateway credentials configured")
)

// RegistrationStore is the slice of the registration repository the lifecycle
// needs. MarkCheckIn must apply its preconditions atomically with the write.
type RegistrationStore interface {
	Create(reg *models.Registration) error
	GetByID(id string) (*models.Registration, error)
	Update(reg *models.Registration) error
	MarkCheckIn(id string, t time.Time) (bool, error)
}

type CouponStore interface {
	FindActive(code string) (*models.Coupon, error)
	IncrementUsage(code string) error
}

type PriceStore interface {
	PriceMap() (map[string]float64, error)
}

type ConfigStore interface {
	Platform() (*models.PlatformConfig, error)
	EventPayment() (*models.EventPaymentConfig, error)
}

// RegistrationService orchestrates the registration lifecycle: creation with
// pricing, the pending -> completed payment transition and venue check-in.
type RegistrationService struct {
	cfg     *config.Config
	regs    RegistrationStore
	cupones CouponStore
	precios PriceStore
	configs ConfigStore
	gw      gateway.Client
	mail    mailer.Mailer
	now     func() time.Time
}

func NewRegistrationService(
	cfg *config.Config,
	regs RegistrationStore,
	cupones CouponStore,
	precios PriceStore,
	configs ConfigStore,
	gw gateway.Client,
	mail mailer.Mailer,
) *RegistrationService {
	return &RegistrationService{
		cfg:     cfg,
		regs:    regs,
		cupones: cupones,
		precios: precios,
		configs: configs,
		gw:      gw,
		mail:    mail,
		now:     time.Now,
	}
}

type CreateRequest struct {
	Nombre            string
	Apellido          string
	Cedula            string
	NumeroCompeticion string
	Celular           string
	Correo            string
	Categorias        []string
	Liga              string
	CodigoCupon       string
}

// Quote prices a selection against the current price table without touching
// any state.
func (s *RegistrationService) Quote(categorias []string, codigoCupon string) (pricing.Quote, error) {
	if len(categorias) == 0 {
		return pricing.Quote{}, ErrNoCategories
	}
	table, err := s.precios.PriceMap()
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Calculate(categorias, codigoCupon, table, s.now(), s.cupones), nil
}

// Create prices the selection, persists the registration with its QR payload
// and, for fully discounted signups, completes it on the spot. The coupon use
// counter is only bumped when the coupon actually produced a discount.
func (s *RegistrationService) Create(req CreateRequest) (*models.Registration, error) {
	if len(req.Categorias) == 0 {
		return nil, ErrNoCategories
	}
	codigo := strings.ToUpper(strings.TrimSpace(req.CodigoCupon))
	quote, err := s.Quote(req.Categorias, codigo)
	if err != nil {
		return nil, err
	}

	reg := &models.Registration{
		ID:                uuid.New().String(),
		Nombre:            req.Nombre,
		Apellido:          req.Apellido,
		Cedula:            req.Cedula,
		NumeroCompeticion: req.NumeroCompeticion,
		Celular:           req.Celular,
		Correo:            req.Correo,
		Categorias:        req.Categorias,
		Liga:              req.Liga,
		CodigoCupon:       codigo,
		PrecioBase:        quote.PrecioBase,
		Descuento:         quote.Descuento,
		PrecioFinal:       quote.PrecioFinal,
		EstadoPago:        domain.EstadoPendiente,
	}
	reg.QRCode = qrtoken.Issue(reg.ID, s.cfg.QR.Secret)

	// A fully discounted registration never touches the gateway.
	free := quote.PrecioFinal == 0
	if free {
		reg.EstadoPago = domain.EstadoCompletado
		if err := s.applySplit(reg); err != nil {
			return nil, err
		}
	}

	if err := s.regs.Create(reg); err != nil {
		return nil, err
	}

	if codigo != "" && quote.Descuento > 0 {
		if err := s.cupones.IncrementUsage(codigo); err != nil {
			logging.Log.WithError(err).WithField("codigo", codigo).Warn("registration: coupon increment failed")
		}
	}

	if free {
		s.sendConfirmation(reg)
	}
	return reg, nil
}

func (s *RegistrationService) Get(id string) (*models.Registration, error) {
	reg, err := s.regs.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

// ValidateCoupon is the strict counterpart of the silent coupon handling at
// creation time: unknown or inactive codes are errors here.
func (s *RegistrationService) ValidateCoupon(code string) (*models.Coupon, error) {
	c, err := s.cupones.FindActive(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if c.Agotado() {
		return nil, ErrCouponExhausted
	}
	return c, nil
}

// accessToken prefers the organizer's own gateway credentials and falls back
// to the platform account.
func (s *RegistrationService) accessToken() (string, error) {
	if ev, err := s.configs.EventPayment(); err == nil && ev.MPAccessToken != "" {
		return ev.MPAccessToken, nil
	}
	platform, err := s.configs.Platform()
	if err != nil {
		return "", err
	}
	if platform.MPAccessToken == "" {
		return "", ErrNoGatewayCredentials
	}
	return platform.MPAccessToken, nil
}

// CreatePreference asks the gateway for a checkout link for a pending
// registration. The registration id travels as the external reference so the
// webhook can map the payment back.
func (s *RegistrationService) CreatePreference(ctx context.Context, regID string) (*gateway.Preference, error) {
	reg, err := s.Get(regID)
	if err != nil {
		return nil, err
	}
	if reg.EstadoPago == domain.EstadoCompletado {
		return nil, errors.New("registration already paid")
	}
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	pref, err := s.gw.CreatePreference(ctx, token, gateway.PreferenceRequest{
		Title:             "Inscripción Super GP - " + reg.Nombre + " " + reg.Apellido,
		Amount:            reg.PrecioFinal,
		PayerName:         reg.Nombre + " " + reg.Apellido,
		PayerEmail:        reg.Correo,
		ExternalReference: reg.ID,
		SuccessURL:        s.cfg.Server.FrontendBaseURL + "/pago-exitoso",
		FailureURL:        s.cfg.Server.FrontendBaseURL + "/pago-fallido",
		PendingURL:        s.cfg.Server.FrontendBaseURL + "/pago-pendiente",
		NotificationURL:   s.cfg.Server.PublicBaseURL + "/api/v1/webhooks/mercadopago",
	})
	if err != nil {
		return nil, err
	}
	reg.PreferenceID = pref.ID
	if err := s.regs.Update(reg); err != nil {
		return nil, err
	}
	return pref, nil
}

// HandleGatewayNotification processes a webhook event: look the payment up,
// and complete the referenced registration when it is approved. Unknown
// payments and non-approved statuses are ignored.
func (s *RegistrationService) HandleGatewayNotification(ctx context.Context, paymentID string) error {
	token, err := s.accessToken()
	if err != nil {
		return err
	}
	payment, err := s.gw.GetPayment(ctx, token, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != gateway.StatusApproved {
		logging.Log.WithFields(map[string]interface{}{
			"payment_id": paymentID,
			"status":     payment.Status,
		}).Debug("webhook: ignoring non-approved payment")
		return nil
	}
	reg, err := s.Get(payment.ExternalReference)
	if err != nil {
		return err
	}
	return s.complete(reg, paymentID)
}

// VerifyPayment polls the gateway for approved payments referencing the
// registration and completes it when one exists. Idempotent.
func (s *RegistrationService) VerifyPayment(ctx context.Context, regID string) (*models.Registration, error) {
	reg, err := s.Get(regID)
	if err != nil {
		return nil, err
	}
	if reg.EstadoPago == domain.EstadoCompletado {
		return reg, nil
	}
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	payments, err := s.gw.SearchByReference(ctx, token, reg.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.Status == gateway.StatusApproved {
			if err := s.complete(reg, paymentIDString(p.ID)); err != nil {
				return nil, err
			}
			break
		}
	}
	return reg, nil
}

// CompleteManually is the admin override for the pending -> completed
// transition. Like the other triggers it is idempotent.
func (s *RegistrationService) CompleteManually(regID string) (*models.Registration, error) {
	reg, err := s.Get(regID)
	if err != nil {
		return nil, err
	}
	if err := s.complete(reg, reg.PaymentID); err != nil {
		return nil, err
	}
	return reg, nil
}

// complete performs the pending -> completed transition: commission split,
// durable write, then exactly one confirmation email. Re-completing is a
// no-op that does not resend anything. The state write happens before the
// email so a mail failure can never leave a paid registration pending.
func (s *RegistrationService) complete(reg *models.Registration, paymentID string) error {
	if reg.EstadoPago == domain.EstadoCompletado {
		return nil
	}
	if err := s.applySplit(reg); err != nil {
		return err
	}
	reg.EstadoPago = domain.EstadoCompletado
	if paymentID != "" {
		reg.PaymentID = paymentID
	}
	if err := s.regs.Update(reg); err != nil {
		return err
	}
	logging.Log.WithFields(map[string]interface{}{
		"registration_id": reg.ID,
		"payment_id":      paymentID,
		"comision":        reg.Comision,
		"neto_evento":     reg.NetoEvento,
	}).Info("registration: payment completed")
	s.sendConfirmation(reg)
	return nil
}

func paymentIDString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *RegistrationService) applySplit(reg *models.Registration) error {
	platform, err := s.configs.Platform()
	if err != nil {
		return err
	}
	reg.Comision, reg.NetoEvento = pricing.Split(reg.PrecioFinal, platform.CommissionMode, platform.CommissionValue)
	return nil
}

// ScanResult is the scan-to-preview response shown to the gate operator
// before the explicit check-in call.
type ScanResult struct {
	Registration *models.Registration `json:"registration"`
	CanCheckIn   bool                 `json:"can_check_in"`
}

// ScanPreview verifies a scanned QR payload and reports whether the pilot can
// be checked in, without mutating anything.
func (s *RegistrationService) ScanPreview(qrData string) (*ScanResult, error) {
	ok, regID := qrtoken.Verify(qrData, s.cfg.QR.Secret)
	if !ok {
		return nil, ErrInvalidQR
	}
	reg, err := s.Get(regID)
	if err != nil {
		return nil, err
	}
	return &ScanResult{
		Registration: reg,
		CanCheckIn:   reg.EstadoPago == domain.EstadoCompletado && !reg.CheckIn,
	}, nil
}

// CheckIn commits the venue check-in. Preconditions (paid, not yet checked
// in) are re-verified atomically by the store so a double scan loses cleanly.
func (s *RegistrationService) CheckIn(regID string) (*models.Registration, error) {
	reg, err := s.Get(regID)
	if err != nil {
		return nil, err
	}
	if reg.EstadoPago != domain.EstadoCompletado {
		return nil, ErrNotCompleted
	}
	if reg.CheckIn {
		return nil, ErrAlreadyCheckedIn
	}
	now := s.now()
	ok, err := s.regs.MarkCheckIn(reg.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyCheckedIn
	}
	reg.CheckIn = true
	reg.CheckInTime = &now
	return reg, nil
}

func (s *RegistrationService) sendConfirmation(reg *models.Registration) {
	qrImage, err := qrtoken.RenderDataURI(reg.QRCode)
	if err != nil {
		logging.Log.WithError(err).Error("registration: qr render failed")
		qrImage = ""
	}
	subject := "Confirmación de Inscripción - Super GP"
	html := buildConfirmationEmail(reg, qrImage)
	if !s.mail.Send(reg.Correo, subject, html, s.cfg.Mail.AdminEmail) {
		logging.Log.WithField("registration_id", reg.ID).Error("registration: confirmation email failed")
	}
}
