package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"github.com/apparel-site-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ArticleDateLayout is the display format of an article's date and publishDate
const ArticleDateLayout = "January 2, 2006"

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repo   repository.ArticleRepository
	store  media.Store
	preset string
	now    func() time.Time
	log    zerolog.Logger
}

func newArticleService(repo repository.ArticleRepository, store media.Store, cfg *config.Config, log zerolog.Logger) *articleService {
	return &articleService{
		repo:   repo,
		store:  store,
		preset: cfg.Media.UploadPreset,
		now:    time.Now,
		log:    log.With().Str("service", "article").Logger(),
	}
}

func (s *articleService) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	articles, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *articleService) FindByID(ctx context.Context, id string) (*models.Article, error) {
	if !validation.IsValidUUID(id) {
		return nil, ErrNotFound
	}
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return article, nil
}

func (s *articleService) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return article, nil
}

// Resolve falls back to a slug lookup only when the id lookup finds nothing;
// storage failures are returned as is.
func (s *articleService) Resolve(ctx context.Context, identifier string) (*models.Article, error) {
	if validation.IsValidUUID(identifier) {
		article, err := s.FindByID(ctx, identifier)
		if err == nil {
			return article, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return s.FindBySlug(ctx, identifier)
}

func (s *articleService) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	now := s.now()
	article := &models.Article{
		ID:           uuid.New().String(),
		Likes:        "0",
		Shares:       "0",
		Status:       models.ArticleStatusDraft,
		Content:      []models.ContentBlock{},
		SidebarItems: []string{},
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	input.ApplyTo(article)
	normalizeArticle(article)

	today := now.Format(ArticleDateLayout)
	if article.Date == "" {
		article.Date = today
	}
	if article.PublishDate == "" {
		article.PublishDate = today
	}

	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if err := s.repo.Create(ctx, article); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: slug %q is taken", ErrConflict, article.Slug)
		}
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("slug", article.Slug).
		Msg("Article created")

	return article, nil
}

func (s *articleService) Update(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error) {
	article, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(article)
	normalizeArticle(article)
	article.UpdatedAt = s.now().UTC()

	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if err := s.repo.Update(ctx, article); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: slug %q is taken", ErrConflict, article.Slug)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}

	s.log.Info().Str("article_id", article.ID).Msg("Article updated")
	return article, nil
}

// Delete removes the article row even when its hero image cannot be removed
// from the media store.
func (s *articleService) Delete(ctx context.Context, id string) error {
	article, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if article.HeroImg != "" {
		s.destroyHeroImage(ctx, article)
	}

	if err := s.repo.Delete(ctx, article.ID); err != nil {
		return mapRepoError(err)
	}

	s.log.Info().Str("article_id", article.ID).Msg("Article deleted")
	return nil
}

func (s *articleService) destroyHeroImage(ctx context.Context, article *models.Article) {
	log := s.log.With().Str("article_id", article.ID).Str("hero_img", article.HeroImg).Logger()

	publicID, err := media.PublicIDFromURL(article.HeroImg)
	if err != nil {
		log.Warn().Err(err).Msg("Skipping hero image cleanup")
		return
	}

	result, err := s.store.Destroy(ctx, publicID, media.ResourceImage)
	if err != nil {
		log.Warn().Err(err).Str("public_id", publicID).Msg("Failed to delete hero image")
		return
	}
	if result != media.ResultOK {
		log.Warn().Str("public_id", publicID).Str("result", result).Msg("Hero image was not deleted")
	}
}

func (s *articleService) UploadHeroImage(ctx context.Context, file models.FileUpload) (*models.UploadedAsset, error) {
	if !isImage(file.ContentType) {
		return nil, invalid("image", "Only image files are allowed")
	}

	asset, err := s.store.Upload(ctx, file.Path, media.UploadOptions{
		Folder:       media.FolderArticles,
		ResourceType: media.ResourceImage,
		UploadPreset: s.preset,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("public_id", asset.PublicID).Msg("Hero image uploaded")
	return &models.UploadedAsset{
		PublicID:  asset.PublicID,
		URL:       asset.SecureURL,
		Width:     asset.Width,
		Height:    asset.Height,
		Format:    asset.Format,
		CreatedAt: asset.CreatedAt,
	}, nil
}

// normalizeArticle trims identifying fields and derives a missing slug
func normalizeArticle(a *models.Article) {
	a.Title = strings.TrimSpace(a.Title)
	a.Slug = strings.TrimSpace(a.Slug)
	if a.Slug == "" {
		a.Slug = validation.DeriveSlug(a.Title)
	}
	if a.Content == nil {
		a.Content = []models.ContentBlock{}
	}
	if a.SidebarItems == nil {
		a.SidebarItems = []string{}
	}
}

func isImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
