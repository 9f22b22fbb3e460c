package handler

import (
	"errors"
	"net/http"

	"supergp/internal/service"
	"supergp/logging"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc *service.RegistrationService
}

func NewPaymentHandler(svc *service.RegistrationService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// CreatePreference returns a Mercado Pago checkout link for a pending
// registration.
func (h *PaymentHandler) CreatePreference(c *gin.Context) {
	pref, err := h.svc.CreatePreference(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		case errors.Is(err, service.ErrNoGatewayCredentials):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments are not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment preference"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preference_id":      pref.ID,
		"init_point":         pref.InitPoint,
		"sandbox_init_point": pref.SandboxInitPoint,
	})
}

// Verify polls the gateway for an approved payment referencing the
// registration. The frontend calls this from the payment return pages as a
// safety net next to the webhook.
func (h *PaymentHandler) Verify(c *gin.Context) {
	reg, err := h.svc.VerifyPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		case errors.Is(err, service.ErrNoGatewayCredentials):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments are not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify payment"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado_pago": reg.EstadoPago, "inscripcion": reg})
}

// Webhook receives Mercado Pago payment notifications. It always acknowledges
// with 200 so the gateway does not retry forever; processing failures are
// logged and recovered through the verify poll.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload struct {
		Type string `json:"type"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		logging.Log.WithError(err).Warn("webhook: unreadable payload")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if payload.Type != "payment" || payload.Data.ID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if err := h.svc.HandleGatewayNotification(c.Request.Context(), payload.Data.ID); err != nil {
		logging.Log.WithError(err).WithField("payment_id", payload.Data.ID).Error("webhook: processing failed")
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
