package handler

import (
	"net/http"

	"supergp/internal/domain"
	"supergp/internal/repository"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	configs *repository.ConfigRepository
}

func NewConfigHandler(configs *repository.ConfigRepository) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

// PublicKey exposes the Mercado Pago public key the checkout widget needs.
// Organizer credentials win over the platform fallback, mirroring how the
// access token is chosen server side.
func (h *ConfigHandler) PublicKey(c *gin.Context) {
	if ev, err := h.configs.EventPayment(); err == nil && ev.MPPublicKey != "" {
		c.JSON(http.StatusOK, gin.H{"public_key": ev.MPPublicKey})
		return
	}
	platform, err := h.configs.Platform()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": platform.MPPublicKey})
}

func (h *ConfigHandler) GetPlatform(c *gin.Context) {
	cfg, err := h.configs.Platform()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load platform config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"commission_mode":  cfg.CommissionMode,
		"commission_value": cfg.CommissionValue,
		"mp_public_key":    cfg.MPPublicKey,
		"has_access_token": cfg.MPAccessToken != "",
	})
}

func (h *ConfigHandler) UpdatePlatform(c *gin.Context) {
	var req struct {
		CommissionMode  *string  `json:"commission_mode"`
		CommissionValue *float64 `json:"commission_value"`
		MPAccessToken   *string  `json:"mp_access_token"`
		MPPublicKey     *string  `json:"mp_public_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cfg, err := h.configs.Platform()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load platform config"})
		return
	}
	if req.CommissionMode != nil {
		mode := *req.CommissionMode
		if mode != domain.CommissionPercentage && mode != domain.CommissionFixed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "commission_mode must be percentage or fixed"})
			return
		}
		cfg.CommissionMode = mode
	}
	if req.CommissionValue != nil {
		if *req.CommissionValue < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "commission_value cannot be negative"})
			return
		}
		cfg.CommissionValue = *req.CommissionValue
	}
	if req.MPAccessToken != nil {
		cfg.MPAccessToken = *req.MPAccessToken
	}
	if req.MPPublicKey != nil {
		cfg.MPPublicKey = *req.MPPublicKey
	}
	if err := h.configs.SavePlatform(cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save platform config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "platform config updated"})
}

func (h *ConfigHandler) GetEventPayment(c *gin.Context) {
	cfg, err := h.configs.EventPayment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event payment config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mp_public_key":    cfg.MPPublicKey,
		"has_access_token": cfg.MPAccessToken != "",
	})
}

func (h *ConfigHandler) UpdateEventPayment(c *gin.Context) {
	var req struct {
		MPAccessToken *string `json:"mp_access_token"`
		MPPublicKey   *string `json:"mp_public_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cfg, err := h.configs.EventPayment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event payment config"})
		return
	}
	if req.MPAccessToken != nil {
		cfg.MPAccessToken = *req.MPAccessToken
	}
	if req.MPPublicKey != nil {
		cfg.MPPublicKey = *req.MPPublicKey
	}
	if err := h.configs.SaveEventPayment(cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save event payment config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event payment config updated"})
}
