// Package media wraps the hosted media store used for images, PDFs and
// contact-form attachments.
package media

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ResourceType is the media store's asset class
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceRaw   ResourceType = "raw"
	// ResourceAuto lets the store detect the class on upload; it is not valid for destroy.
	ResourceAuto ResourceType = "auto"
)

// Destroy result codes
const (
	ResultOK       = "ok"
	ResultNotFound = "not found"
)

// Folders used by the site
const (
	FolderGallery      = "gallery"
	FolderArticles     = "blog-articles"
	FolderCatalogue    = "catalogue"
	FolderContactFiles = "contact-files"
)

// ErrUnrecognizedURL is returned when a stored URL does not follow the delivery URL layout
var ErrUnrecognizedURL = errors.New("unrecognized media URL")

// UploadOptions controls where and how a file is stored
type UploadOptions struct {
	Folder       string
	PublicID     string
	ResourceType ResourceType
	UploadPreset string
}

// Asset describes a stored object
type Asset struct {
	PublicID     string
	SecureURL    string
	Width        int
	Height       int
	Format       string
	ResourceType string
	Bytes        int
	CreatedAt    time.Time
}

// SearchQuery selects assets by search expression, newest first
type SearchQuery struct {
	Expression string
	SortField  string
	Cursor     string
	MaxResults int
}

// SearchPage is one page of search results
type SearchPage struct {
	Assets     []Asset
	NextCursor string
	TotalCount int
}

// Metadata is the remote tag and context state of an asset
type Metadata struct {
	PublicID string
	Tags     []string
	Context  map[string]string
}

// Store is the set of media-store operations the site needs
type Store interface {
	Upload(ctx context.Context, path string, opts UploadOptions) (*Asset, error)
	Search(ctx context.Context, q SearchQuery) (*SearchPage, error)
	// Destroy returns the store's result code; callers compare against ResultOK.
	Destroy(ctx context.Context, publicID string, rt ResourceType) (string, error)
	UpdateMetadata(ctx context.Context, publicID string, tags []string, attributes map[string]string) (*Metadata, error)
	// ThumbnailURL builds a fill-cropped rendition URL without a network call.
	ThumbnailURL(publicID string, width, height int) (string, error)
}

// UploadError reports a failed upload
type UploadError struct {
	Folder string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media upload to %q failed: %v", e.Folder, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// SearchError reports a failed search
type SearchError struct {
	Expression string
	Err        error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("media search %q failed: %v", e.Expression, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// ImageExpression returns the search expression for the gallery listing
func ImageExpression(folder string) string {
	if folder != "" {
		return fmt.Sprintf("folder:%s", folder)
	}
	return "resource_type:image"
}
