package handler

import (
	"errors"
	"net/http"

	"supergp/internal/service"
	"supergp/internal/ws"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	svc *service.RegistrationService
	hub *ws.CheckInHub
}

func NewCheckInHandler(svc *service.RegistrationService, hub *ws.CheckInHub) *CheckInHandler {
	return &CheckInHandler{svc: svc, hub: hub}
}

// Scan verifies a QR payload and previews the registration without changing
// anything. The gate operator confirms with a separate call.
func (h *CheckInHandler) Scan(c *gin.Context) {
	var req struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qr_data required"})
		return
	}
	res, err := h.svc.ScanPreview(req.QRData)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQR):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid qr code"})
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to scan qr"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// Confirm commits the check-in and pushes the event to the live dashboards.
func (h *CheckInHandler) Confirm(c *gin.Context) {
	reg, err := h.svc.CheckIn(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		case errors.Is(err, service.ErrNotCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "registration payment not completed"})
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			c.JSON(http.StatusConflict, gin.H{"error": "registration already checked in"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check in"})
		}
		return
	}
	h.hub.Broadcast(ws.CheckInEvent{
		RegistrationID: reg.ID,
		Nombre:         reg.Nombre,
		Apellido:       reg.Apellido,
		Categorias:     reg.Categorias,
		CheckInTime:    *reg.CheckInTime,
	})
	c.JSON(http.StatusOK, reg)
}
