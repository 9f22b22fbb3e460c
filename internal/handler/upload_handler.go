package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"supergp/logging"
	"supergp/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

type UploadHandler struct {
	cloud cloudinary.Client
}

func NewUploadHandler(cloud cloudinary.Client) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// Image uploads a news or gallery image to Cloudinary and returns the
// delivery URLs.
func (h *UploadHandler) Image(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported image format"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	folder := c.DefaultPostForm("folder", "supergp")
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), file, folder, uuid.New().String())
	if err != nil {
		logging.Log.WithError(err).Error("upload: cloudinary upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "thumbnail_url": thumb})
}
