package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"github.com/apparel-site-api/internal/validation"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"
)

const (
	pdfContentType = "application/pdf"
	// MaxCatalogueSize caps a catalogue PDF at 10 MiB
	MaxCatalogueSize int64 = 10 * 1024 * 1024
)

// catalogueService is the concrete implementation of CatalogueService
type catalogueService struct {
	repo  repository.CatalogueRepository
	store media.Store
	log   zerolog.Logger
}

func newCatalogueService(repo repository.CatalogueRepository, store media.Store, log zerolog.Logger) *catalogueService {
	return &catalogueService{
		repo:  repo,
		store: store,
		log:   log.With().Str("service", "catalogue").Logger(),
	}
}

func (s *catalogueService) List(ctx context.Context) ([]models.CatalogueEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalogue: %w", err)
	}
	return entries, nil
}

// Upload stores the PDF as a raw asset and records it. When the record cannot
// be written the asset is destroyed again.
func (s *catalogueService) Upload(ctx context.Context, file models.FileUpload) (*models.CatalogueEntry, error) {
	if file.ContentType != pdfContentType {
		return nil, invalid("pdf", "Only PDF files are allowed")
	}
	if file.Size > MaxCatalogueSize {
		return nil, invalid("pdf", "PDF file must be less than 10MB")
	}

	pages := s.pageCount(file.Path)

	asset, err := s.store.Upload(ctx, file.Path, media.UploadOptions{
		Folder:       media.FolderCatalogue,
		PublicID:     "pdf_" + uuid.New().String(),
		ResourceType: media.ResourceRaw,
	})
	if err != nil {
		return nil, err
	}

	entry := &models.CatalogueEntry{
		ID:         uuid.New().String(),
		Name:       file.Name,
		URL:        asset.SecureURL,
		PublicID:   asset.PublicID,
		Size:       models.FormatSize(file.Size),
		Pages:      pages,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if _, derr := s.store.Destroy(ctx, asset.PublicID, media.ResourceRaw); derr != nil {
			s.log.Warn().Err(derr).Str("public_id", asset.PublicID).Msg("Failed to remove orphaned catalogue upload")
		}
		return nil, fmt.Errorf("create catalogue entry: %w", err)
	}

	s.log.Info().
		Str("entry_id", entry.ID).
		Str("public_id", entry.PublicID).
		Str("size", entry.Size).
		Msg("Catalogue PDF uploaded")

	return entry, nil
}

func (s *catalogueService) Delete(ctx context.Context, id string) error {
	if !validation.IsValidUUID(id) {
		return ErrNotFound
	}
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	result, err := s.store.Destroy(ctx, entry.PublicID, media.ResourceRaw)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("public_id", entry.PublicID).Msg("Failed to delete catalogue PDF from media store")
	case result != media.ResultOK:
		s.log.Warn().Str("public_id", entry.PublicID).Str("result", result).Msg("Catalogue PDF was not deleted from media store")
	}

	if err := s.repo.Delete(ctx, entry.ID); err != nil {
		return mapRepoError(err)
	}

	s.log.Info().Str("entry_id", entry.ID).Msg("Catalogue entry deleted")
	return nil
}

// pageCount is best-effort; an unreadable PDF is still accepted
func (s *catalogueService) pageCount(path string) *int {
	f, err := os.Open(path)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to open PDF for page count")
		return nil
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to extract PDF page count")
		return nil
	}
	return &count
}
