package models

import (
	"fmt"
	"time"
)

// CatalogueEntry is a PDF catalogue hosted in the media store
type CatalogueEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	PublicID   string    `json:"publicId"`
	Size       string    `json:"size"`
	Pages      *int      `json:"pages,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// FormatSize renders a byte count as mebibytes with two decimals, e.g. "2.34 MB"
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// FileUpload describes a multipart file staged on local disk
type FileUpload struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}
