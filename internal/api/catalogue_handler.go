package api

import (
	"net/http"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CatalogueHandler handles PDF catalogue endpoints
type CatalogueHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewCatalogueHandler creates a new CatalogueHandler
func NewCatalogueHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "catalogue").Logger(),
	}
}

// List handles GET /api/catalogue
func (h *CatalogueHandler) List(c *gin.Context) {
	entries, err := h.services.Catalogue.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to fetch catalogue"})
		return
	}
	respondData(c, http.StatusOK, entries, "")
}

// Upload handles POST /api/catalogue/upload (multipart field "pdf")
func (h *CatalogueHandler) Upload(c *gin.Context) {
	file, cleanup, err := stageUpload(c, "pdf", h.cfg.Upload.TempDir)
	defer cleanup()
	if err != nil {
		if !respondUploadError(c, err, "No PDF file provided") {
			respondServiceError(c, h.log, err, errorText{internal: "Failed to upload PDF"})
		}
		return
	}

	entry, err := h.services.Catalogue.Upload(c.Request.Context(), *file)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to upload PDF"})
		return
	}
	respondData(c, http.StatusOK, entry, "PDF uploaded successfully")
}

// Delete handles DELETE /api/catalogue/:id
func (h *CatalogueHandler) Delete(c *gin.Context) {
	if err := h.services.Catalogue.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Catalogue item not found",
			internal: "Failed to delete catalogue item",
		})
		return
	}
	respondMessage(c, http.StatusOK, "Catalogue item deleted successfully")
}
