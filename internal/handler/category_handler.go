package handler

import (
	"net/http"

	"supergp/internal/models"
	"supergp/internal/repository"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *repository.CategoryRepository
}

func NewCategoryHandler(categories *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Listing is the public catalog the signup form renders: section groups plus
// the per-category price table.
func (h *CategoryHandler) Listing(c *gin.Context) {
	groups, err := h.categories.ListGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	prices, err := h.categories.ListPrices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list prices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grupos": groups, "precios": prices})
}

func (h *CategoryHandler) UpsertPrice(c *gin.Context) {
	var req struct {
		Nombre   string  `json:"nombre" binding:"required"`
		Precio   float64 `json:"precio" binding:"required,gt=0"`
		Posicion int     `json:"posicion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p := &models.CategoryPrice{Nombre: req.Nombre, Precio: req.Precio, Posicion: req.Posicion}
	if err := h.categories.UpsertPrice(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save price"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CategoryHandler) DeletePrice(c *gin.Context) {
	if err := h.categories.DeletePrice(c.Param("nombre")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete price"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "price deleted"})
}

func (h *CategoryHandler) UpsertGroup(c *gin.Context) {
	var req struct {
		Nombre     string   `json:"nombre" binding:"required"`
		Categorias []string `json:"categorias" binding:"required"`
		Posicion   int      `json:"posicion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	g := &models.CategoryGroup{Nombre: req.Nombre, Categorias: req.Categorias, Posicion: req.Posicion}
	if err := h.categories.UpsertGroup(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save group"})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *CategoryHandler) DeleteGroup(c *gin.Context) {
	if err := h.categories.DeleteGroup(c.Param("nombre")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "group deleted"})
}
