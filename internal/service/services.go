package service

import (
	"context"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for blog article operations
type ArticleService interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	// Resolve tries identifier as an id first, then as a slug
	Resolve(ctx context.Context, identifier string) (*models.Article, error)
	Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	UploadHeroImage(ctx context.Context, file models.FileUpload) (*models.UploadedAsset, error)
}

// CatalogueService defines the interface for PDF catalogue operations
type CatalogueService interface {
	List(ctx context.Context) ([]models.CatalogueEntry, error)
	Upload(ctx context.Context, file models.FileUpload) (*models.CatalogueEntry, error)
	Delete(ctx context.Context, id string) error
}

// MessageService defines the interface for contact-form messages
type MessageService interface {
	Submit(ctx context.Context, input *models.MessageInput, file *models.FileUpload) (*models.Message, error)
	List(ctx context.Context, status string) ([]models.MessageView, error)
	UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.Message, error)
	Delete(ctx context.Context, id string) error
}

// GalleryService defines the interface for gallery operations against the media store
type GalleryService interface {
	List(ctx context.Context, q models.GalleryQuery) (*models.GalleryPage, error)
	Upload(ctx context.Context, file models.FileUpload) (*models.UploadedAsset, error)
	DeleteAll(ctx context.Context, folder string) (*models.BulkDeleteResult, error)
	Delete(ctx context.Context, publicID string) error
	UpdateMetadata(ctx context.Context, meta models.ImageMetadata) (*models.ImageMetadata, error)
	Probe(ctx context.Context) (*models.MediaProbe, error)
}

// MetricsService reports document counts
type MetricsService interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	Catalogue CatalogueService
	Message   MessageService
	Gallery   GalleryService
	Metrics   MetricsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store media.Store, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Article:   newArticleService(repos.Article, store, cfg, log),
		Catalogue: newCatalogueService(repos.Catalogue, store, log),
		Message:   newMessageService(repos.Message, store, log),
		Gallery:   newGalleryService(store, cfg, log),
		Metrics:   newMetricsService(repos),
	}
}
