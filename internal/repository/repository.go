package repository

import (
	"context"

	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error)
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CatalogueRepository defines the interface for catalogue data operations
type CatalogueRepository interface {
	Create(ctx context.Context, entry *models.CatalogueEntry) error
	GetByID(ctx context.Context, id string) (*models.CatalogueEntry, error)
	List(ctx context.Context) ([]models.CatalogueEntry, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	List(ctx context.Context, status string) ([]models.Message, error)
	UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.Message, error)
	// Delete removes the message and returns the deleted row
	Delete(ctx context.Context, id string) (*models.Message, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article   ArticleRepository
	Catalogue CatalogueRepository
	Message   MessageRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:   NewArticleRepo(db),
		Catalogue: NewCatalogueRepo(db),
		Message:   NewMessageRepo(db),
	}
}
