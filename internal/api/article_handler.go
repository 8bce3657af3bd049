package api

import (
	"net/http"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles blog article endpoints
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /api/articles?status=&category=&search=
func (h *ArticleHandler) List(c *gin.Context) {
	filter := models.ArticleFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	articles, err := h.services.Article.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articles,
		"total":   len(articles),
	})
}

// Get handles GET /api/articles/:identifier, where identifier is an id or a slug
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.Resolve(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Article not found",
			internal: "Failed to fetch article",
		})
		return
	}
	respondData(c, http.StatusOK, article, "")
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{
			conflict: "An article with this slug already exists",
			internal: "Failed to create article",
		})
		return
	}
	respondData(c, http.StatusCreated, article, "Article created successfully")
}

// Update handles PUT /api/articles/:id. Absent fields keep their stored values.
func (h *ArticleHandler) Update(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Article not found",
			conflict: "An article with this slug already exists",
			internal: "Failed to update article",
		})
		return
	}
	respondData(c, http.StatusOK, article, "Article updated successfully")
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Article not found",
			internal: "Failed to delete article",
		})
		return
	}
	respondMessage(c, http.StatusOK, "Article deleted successfully")
}

// UploadImage handles POST /api/articles/upload-image (multipart field "image")
func (h *ArticleHandler) UploadImage(c *gin.Context) {
	file, cleanup, err := stageUpload(c, "image", h.cfg.Upload.TempDir)
	defer cleanup()
	if err != nil {
		if !respondUploadError(c, err, "No image file provided") {
			respondServiceError(c, h.log, err, errorText{internal: "Failed to upload article image"})
		}
		return
	}

	asset, err := h.services.Article.UploadHeroImage(c.Request.Context(), *file)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to upload article image"})
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"url":       asset.URL,
		"public_id": asset.PublicID,
	}, "Image uploaded successfully")
}
