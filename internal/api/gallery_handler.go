package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GalleryHandler handles gallery endpoints backed by the media store
type GalleryHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "gallery").Logger(),
	}
}

// List handles GET /api/gallery/images?max_results=&next_cursor=&folder=
func (h *GalleryHandler) List(c *gin.Context) {
	maxResults, _ := strconv.Atoi(c.Query("max_results"))

	page, err := h.services.Gallery.List(c.Request.Context(), models.GalleryQuery{
		Folder:     c.Query("folder"),
		Cursor:     c.Query("next_cursor"),
		MaxResults: maxResults,
	})
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to fetch images"})
		return
	}
	respondData(c, http.StatusOK, page, "")
}

// Upload handles POST /api/gallery/upload (multipart field "image")
func (h *GalleryHandler) Upload(c *gin.Context) {
	file, cleanup, err := stageUpload(c, "image", h.cfg.Upload.TempDir)
	defer cleanup()
	if err != nil {
		if !respondUploadError(c, err, "No image file provided") {
			respondServiceError(c, h.log, err, errorText{internal: "Failed to upload image"})
		}
		return
	}

	asset, err := h.services.Gallery.Upload(c.Request.Context(), *file)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to upload image"})
		return
	}
	respondData(c, http.StatusOK, asset, "Image uploaded successfully")
}

// DeleteAll handles DELETE /api/gallery/images?folder=.
// One call removes at most one batch; has_more signals another call is needed.
func (h *GalleryHandler) DeleteAll(c *gin.Context) {
	result, err := h.services.Gallery.DeleteAll(c.Request.Context(), c.Query("folder"))
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to delete images"})
		return
	}

	message := "No images to delete"
	if result.TotalCount > 0 {
		message = fmt.Sprintf("Deleted %d images", result.DeletedCount)
	}
	respondData(c, http.StatusOK, result, message)
}

// Delete handles DELETE /api/gallery/images/:publicId with a percent-encoded publicId
func (h *GalleryHandler) Delete(c *gin.Context) {
	publicID, err := url.PathUnescape(c.Param("publicId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid image id", err.Error())
		return
	}

	if err := h.services.Gallery.Delete(c.Request.Context(), publicID); err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Image not found or already deleted",
			internal: "Failed to delete image",
		})
		return
	}
	respondMessage(c, http.StatusOK, "Image deleted successfully")
}

// UpdateMetadata handles PATCH /api/gallery/images/:publicId with body {tags, context}
func (h *GalleryHandler) UpdateMetadata(c *gin.Context) {
	publicID, err := url.PathUnescape(c.Param("publicId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid image id", err.Error())
		return
	}

	var req struct {
		Tags    []string          `json:"tags"`
		Context map[string]string `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	meta, err := h.services.Gallery.UpdateMetadata(c.Request.Context(), models.ImageMetadata{
		PublicID: publicID,
		Tags:     req.Tags,
		Context:  req.Context,
	})
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to update image"})
		return
	}
	respondData(c, http.StatusOK, meta, "Image updated successfully")
}
