package handler

import (
	"net/http"

	"supergp/internal/repository"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings *repository.SettingRepository
}

func NewSettingsHandler(settings *repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List returns all site content settings as a flat key/value map for the
// public site to render.
func (h *SettingsHandler) List(c *gin.Context) {
	list, err := h.settings.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list settings"})
		return
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	c.JSON(http.StatusOK, out)
}

// Update upserts a batch of settings in one request.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	for key, value := range req {
		if err := h.settings.Set(key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req)})
}
