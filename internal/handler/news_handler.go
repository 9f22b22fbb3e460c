package handler

import (
	"errors"
	"net/http"
	"strconv"

	"supergp/internal/models"
	"supergp/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultNewsLimit = 20

type NewsHandler struct {
	news *repository.NewsRepository
}

func NewNewsHandler(news *repository.NewsRepository) *NewsHandler {
	return &NewsHandler{news: news}
}

func (h *NewsHandler) List(c *gin.Context) {
	limit := defaultNewsLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	list, err := h.news.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"noticias": list})
}

func (h *NewsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}
	n, err := h.news.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch news"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req struct {
		Titulo    string `json:"titulo" binding:"required"`
		Contenido string `json:"contenido" binding:"required"`
		ImagenURL string `json:"imagen_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	n := &models.News{Titulo: req.Titulo, Contenido: req.Contenido, ImagenURL: req.ImagenURL}
	if err := h.news.Create(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create news"})
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NewsHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}
	n, err := h.news.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch news"})
		return
	}
	var req struct {
		Titulo    *string `json:"titulo"`
		Contenido *string `json:"contenido"`
		ImagenURL *string `json:"imagen_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Titulo != nil {
		n.Titulo = *req.Titulo
	}
	if req.Contenido != nil {
		n.Contenido = *req.Contenido
	}
	if req.ImagenURL != nil {
		n.ImagenURL = *req.ImagenURL
	}
	if err := h.news.Update(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update news"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}
	if err := h.news.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete news"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "news deleted"})
}
