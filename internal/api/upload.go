package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/apparel-site-api/internal/models"
	"github.com/gin-gonic/gin"
)

var (
	errNoFile       = errors.New("no file in request")
	errFileTooLarge = errors.New("request body too large")
)

// stageUpload copies the multipart file in field to a temp file under dir.
// The returned cleanup removes the temp file and is safe to call on error.
func stageUpload(c *gin.Context, field, dir string) (*models.FileUpload, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, noop, errFileTooLarge
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, noop, errNoFile
		default:
			return nil, noop, fmt.Errorf("read %s: %w", field, err)
		}
	}

	src, err := header.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open %s: %w", field, err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, noop, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return nil, noop, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { os.Remove(dst.Name()) }

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("stage %s: %w", field, err)
	}

	return &models.FileUpload{
		Path:        dst.Name(),
		Name:        header.Filename,
		Size:        size,
		ContentType: header.Header.Get("Content-Type"),
	}, cleanup, nil
}

// respondUploadError answers the request-side staging failures
func respondUploadError(c *gin.Context, err error, missing string) bool {
	switch {
	case errors.Is(err, errNoFile):
		respondError(c, http.StatusBadRequest, missing, nil)
	case errors.Is(err, errFileTooLarge):
		respondError(c, http.StatusBadRequest, "File too large", err.Error())
	default:
		return false
	}
	return true
}
