package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// MessageHandler handles contact-form endpoints
type MessageHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "message").Logger(),
	}
}

// Create handles POST /api/messages.
// Accepts a JSON body, or multipart form fields with an optional "file" attachment.
func (h *MessageHandler) Create(c *gin.Context) {
	var input models.MessageInput
	var file *models.FileUpload

	if strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		if err := c.ShouldBindWith(&input, binding.FormMultipart); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid form data", err.Error())
			return
		}

		staged, cleanup, err := stageUpload(c, "file", h.cfg.Upload.TempDir)
		defer cleanup()
		switch {
		case err == nil:
			file = staged
		case errors.Is(err, errNoFile):
		case respondUploadError(c, err, ""):
			return
		default:
			respondServiceError(c, h.log, err, errorText{internal: "Failed to submit message"})
			return
		}
	} else if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	msg, err := h.services.Message.Submit(c.Request.Context(), &input, file)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to submit message"})
		return
	}
	respondData(c, http.StatusOK, msg, "Message sent successfully")
}

// List handles GET /api/messages?status=
func (h *MessageHandler) List(c *gin.Context) {
	views, err := h.services.Message.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, h.log, err, errorText{internal: "Failed to fetch messages"})
		return
	}
	respondData(c, http.StatusOK, views, "")
}

// UpdateStatus handles PATCH /api/messages/:id/status
func (h *MessageHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status value", err.Error())
		return
	}

	msg, err := h.services.Message.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Message not found",
			internal: "Failed to update message status",
		})
		return
	}
	respondData(c, http.StatusOK, msg, "Status updated successfully")
}

// Delete handles DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.services.Message.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.log, err, errorText{
			notFound: "Message not found",
			internal: "Failed to delete message",
		})
		return
	}
	respondMessage(c, http.StatusOK, "Message deleted successfully")
}
