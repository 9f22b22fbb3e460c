package handler

import (
	"errors"
	"net/http"

	"supergp/internal/repository"
	"supergp/internal/service"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	svc  *service.RegistrationService
	regs *repository.RegistrationRepository
}

func NewRegistrationHandler(svc *service.RegistrationService, regs *repository.RegistrationRepository) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, regs: regs}
}

// Calculate quotes a category selection before the pilot commits. Nothing is
// persisted and coupon counters are untouched.
func (h *RegistrationHandler) Calculate(c *gin.Context) {
	var req struct {
		Categorias  []string `json:"categorias" binding:"required"`
		CodigoCupon string   `json:"codigo_cupon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quote, err := h.svc.Quote(req.Categorias, req.CodigoCupon)
	if err != nil {
		if errors.Is(err, service.ErrNoCategories) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate price"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *RegistrationHandler) Create(c *gin.Context) {
	var req struct {
		Nombre            string   `json:"nombre" binding:"required"`
		Apellido          string   `json:"apellido" binding:"required"`
		Cedula            string   `json:"cedula" binding:"required"`
		NumeroCompeticion string   `json:"numero_competicion" binding:"required"`
		Celular           string   `json:"celular" binding:"required"`
		Correo            string   `json:"correo" binding:"required,email"`
		Categorias        []string `json:"categorias" binding:"required"`
		Liga              string   `json:"liga"`
		CodigoCupon       string   `json:"codigo_cupon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	reg, err := h.svc.Create(service.CreateRequest{
		Nombre:            req.Nombre,
		Apellido:          req.Apellido,
		Cedula:            req.Cedula,
		NumeroCompeticion: req.NumeroCompeticion,
		Celular:           req.Celular,
		Correo:            req.Correo,
		Categorias:        req.Categorias,
		Liga:              req.Liga,
		CodigoCupon:       req.CodigoCupon,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoCategories) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create registration"})
		return
	}
	c.JSON(http.StatusCreated, reg)
}

func (h *RegistrationHandler) Get(c *gin.Context) {
	reg, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registration"})
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (h *RegistrationHandler) List(c *gin.Context) {
	regs, err := h.regs.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(regs), "inscripciones": regs})
}

// Attendance lists checked-in registrations in gate order.
func (h *RegistrationHandler) Attendance(c *gin.Context) {
	regs, err := h.regs.ListCheckedIn()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(regs), "asistencia": regs})
}

// OverrideStatus is the admin completion override for payments confirmed out
// of band (cash, transfer). Idempotent.
func (h *RegistrationHandler) OverrideStatus(c *gin.Context) {
	reg, err := h.svc.CompleteManually(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update registration"})
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (h *RegistrationHandler) BulkDelete(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids required"})
		return
	}
	deleted, err := h.regs.BulkDelete(req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
