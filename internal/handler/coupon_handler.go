package handler

import (
	"errors"
	"net/http"
	"strconv"

	"supergp/internal/models"
	"supergp/internal/repository"
	"supergp/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CouponHandler struct {
	svc     *service.RegistrationService
	cupones *repository.CouponRepository
}

func NewCouponHandler(svc *service.RegistrationService, cupones *repository.CouponRepository) *CouponHandler {
	return &CouponHandler{svc: svc, cupones: cupones}
}

// Validate is the strict public check used by the signup form. Unlike the
// create flow, a bad or exhausted code is an explicit error here.
func (h *CouponHandler) Validate(c *gin.Context) {
	coupon, err := h.svc.ValidateCoupon(c.Param("codigo"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "coupon not found or inactive"})
		case errors.Is(err, service.ErrCouponExhausted):
			c.JSON(http.StatusConflict, gin.H{"valid": false, "error": "coupon usage cap reached"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate coupon"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "cupon": coupon})
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req struct {
		Codigo        string `json:"codigo" binding:"required"`
		TipoDescuento int    `json:"tipo_descuento" binding:"required,min=1,max=100"`
		UsosMaximos   *int   `json:"usos_maximos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	coupon := &models.Coupon{
		Codigo:        req.Codigo,
		TipoDescuento: req.TipoDescuento,
		UsosMaximos:   req.UsosMaximos,
		Activo:        true,
	}
	if err := h.cupones.Create(coupon); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) List(c *gin.Context) {
	list, err := h.cupones.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "cupones": list})
}

func (h *CouponHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}
	var req struct {
		TipoDescuento *int  `json:"tipo_descuento"`
		UsosMaximos   *int  `json:"usos_maximos"`
		Activo        *bool `json:"activo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	coupon, err := h.cupones.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update coupon"})
		return
	}
	if req.TipoDescuento != nil {
		if *req.TipoDescuento < 1 || *req.TipoDescuento > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tipo_descuento must be between 1 and 100"})
			return
		}
		coupon.TipoDescuento = *req.TipoDescuento
	}
	if req.UsosMaximos != nil {
		coupon.UsosMaximos = req.UsosMaximos
	}
	if req.Activo != nil {
		coupon.Activo = *req.Activo
	}
	if err := h.cupones.Update(coupon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update coupon"})
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}
	if err := h.cupones.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete coupon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "coupon deleted"})
}
