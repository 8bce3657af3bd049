package api

import (
	"errors"
	"net/http"

	"github.com/apparel-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// errorText holds the client-facing messages an endpoint uses per error class
type errorText struct {
	notFound string
	conflict string
	internal string
}

func respondData(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, gin.H{"success": false, "error": message, "details": details})
}

// respondServiceError maps service errors onto status codes:
// validation and conflict 400, not found 404, anything else 500.
func respondServiceError(c *gin.Context, log zerolog.Logger, err error, text errorText) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		message := "Validation failed"
		if len(verr.Errors) == 1 {
			message = verr.Errors[0].Message
		}
		respondError(c, http.StatusBadRequest, message, verr.Errors)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, orDefault(text.notFound, "Not found"), err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusBadRequest, orDefault(text.conflict, "Conflict"), err.Error())
	default:
		message := orDefault(text.internal, "Internal server error")
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
		respondError(c, http.StatusInternalServerError, message, err.Error())
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
