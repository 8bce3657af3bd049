package models

import "time"

// GalleryImage is a hosted image as returned to clients
type GalleryImage struct {
	PublicID     string    `json:"public_id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Format       string    `json:"format"`
	CreatedAt    time.Time `json:"created_at"`
	ResourceType string    `json:"resource_type,omitempty"`
}

// GalleryQuery selects a page of gallery images
type GalleryQuery struct {
	Folder     string
	Cursor     string
	MaxResults int
}

// GalleryPage is one page of a gallery listing
type GalleryPage struct {
	Images     []GalleryImage `json:"images"`
	NextCursor string         `json:"next_cursor"`
	TotalCount int            `json:"total_count"`
}

// BulkDeleteResult aggregates the outcome of a gallery bulk delete.
// HasMore is set when the search matched more images than one batch covers;
// callers re-issue the delete until TotalCount is zero.
type BulkDeleteResult struct {
	DeletedCount int  `json:"deleted_count"`
	FailedCount  int  `json:"failed_count"`
	TotalCount   int  `json:"total_count"`
	HasMore      bool `json:"has_more"`
}

// ImageMetadata is the remote tags/context of a hosted image
type ImageMetadata struct {
	PublicID string            `json:"public_id"`
	Tags     []string          `json:"tags"`
	Context  map[string]string `json:"context"`
}

// UploadedAsset is the client view of a freshly uploaded file
type UploadedAsset struct {
	PublicID     string    `json:"public_id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	Format       string    `json:"format,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MediaProbe reports whether the media-store credentials work
type MediaProbe struct {
	TotalResources  int            `json:"total_resources"`
	SampleResources []GalleryImage `json:"sample_resources"`
}

// Stats holds document counts for the metrics endpoint
type Stats struct {
	Articles         int            `json:"articles"`
	CatalogueEntries int            `json:"catalogue_entries"`
	Messages         map[string]int `json:"messages"`
}
