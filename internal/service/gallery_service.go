package service

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGalleryPageSize = 100
	MaxGalleryPageSize     = 500
	// bulkDeleteBatch is the most images one bulk delete call removes
	bulkDeleteBatch = 500
	probeSampleSize = 10
	thumbnailSize   = 400
)

// galleryService is the concrete implementation of GalleryService
type galleryService struct {
	store       media.Store
	preset      string
	concurrency int
	log         zerolog.Logger
}

func newGalleryService(store media.Store, cfg *config.Config, log zerolog.Logger) *galleryService {
	concurrency := cfg.Media.DeleteConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &galleryService{
		store:       store,
		preset:      cfg.Media.UploadPreset,
		concurrency: concurrency,
		log:         log.With().Str("service", "gallery").Logger(),
	}
}

// ClampPageSize applies the gallery listing default and bounds
func ClampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultGalleryPageSize
	case n > MaxGalleryPageSize:
		return MaxGalleryPageSize
	default:
		return n
	}
}

func (s *galleryService) List(ctx context.Context, q models.GalleryQuery) (*models.GalleryPage, error) {
	page, err := s.store.Search(ctx, media.SearchQuery{
		Expression: media.ImageExpression(q.Folder),
		SortField:  "created_at",
		Cursor:     q.Cursor,
		MaxResults: ClampPageSize(q.MaxResults),
	})
	if err != nil {
		return nil, err
	}

	images := make([]models.GalleryImage, 0, len(page.Assets))
	for _, asset := range page.Assets {
		images = append(images, s.toImage(asset))
	}

	return &models.GalleryPage{
		Images:     images,
		NextCursor: page.NextCursor,
		TotalCount: page.TotalCount,
	}, nil
}

func (s *galleryService) Upload(ctx context.Context, file models.FileUpload) (*models.UploadedAsset, error) {
	if !isImage(file.ContentType) {
		return nil, invalid("image", "Only image files are allowed")
	}

	asset, err := s.store.Upload(ctx, file.Path, media.UploadOptions{
		Folder:       media.FolderGallery,
		ResourceType: media.ResourceAuto,
		UploadPreset: s.preset,
	})
	if err != nil {
		return nil, err
	}

	img := s.toImage(*asset)
	s.log.Info().Str("public_id", asset.PublicID).Msg("Gallery image uploaded")

	return &models.UploadedAsset{
		PublicID:     img.PublicID,
		URL:          img.URL,
		ThumbnailURL: img.ThumbnailURL,
		Width:        img.Width,
		Height:       img.Height,
		Format:       img.Format,
		CreatedAt:    img.CreatedAt,
	}, nil
}

// DeleteAll removes one batch of matching images with bounded concurrency.
// Individual failures are counted, never returned; HasMore tells the caller
// another call is needed.
func (s *galleryService) DeleteAll(ctx context.Context, folder string) (*models.BulkDeleteResult, error) {
	page, err := s.store.Search(ctx, media.SearchQuery{
		Expression: media.ImageExpression(folder),
		SortField:  "created_at",
		MaxResults: bulkDeleteBatch,
	})
	if err != nil {
		return nil, err
	}

	result := &models.BulkDeleteResult{
		TotalCount: len(page.Assets),
		HasMore:    page.TotalCount > len(page.Assets),
	}
	if len(page.Assets) == 0 {
		return result, nil
	}

	var deleted, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, asset := range page.Assets {
		g.Go(func() error {
			rt := media.ResourceType(asset.ResourceType)
			if rt == "" {
				rt = media.ResourceImage
			}
			res, err := s.store.Destroy(ctx, asset.PublicID, rt)
			if err != nil || res != media.ResultOK {
				failed.Add(1)
				s.log.Warn().Err(err).Str("public_id", asset.PublicID).Str("result", res).Msg("Failed to delete gallery image")
				return nil
			}
			deleted.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result.DeletedCount = int(deleted.Load())
	result.FailedCount = int(failed.Load())

	s.log.Info().
		Str("folder", folder).
		Int("deleted", result.DeletedCount).
		Int("failed", result.FailedCount).
		Bool("has_more", result.HasMore).
		Msg("Bulk gallery delete finished")

	return result, nil
}

func (s *galleryService) Delete(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return ErrNotFound
	}

	result, err := s.store.Destroy(ctx, publicID, media.ResourceImage)
	if err != nil {
		return err
	}
	if result != media.ResultOK {
		return ErrNotFound
	}

	s.log.Info().Str("public_id", publicID).Msg("Gallery image deleted")
	return nil
}

func (s *galleryService) UpdateMetadata(ctx context.Context, meta models.ImageMetadata) (*models.ImageMetadata, error) {
	if strings.TrimSpace(meta.PublicID) == "" {
		return nil, invalid("public_id", "public_id is required")
	}

	updated, err := s.store.UpdateMetadata(ctx, meta.PublicID, meta.Tags, meta.Context)
	if err != nil {
		return nil, err
	}

	return &models.ImageMetadata{
		PublicID: updated.PublicID,
		Tags:     updated.Tags,
		Context:  updated.Context,
	}, nil
}

// Probe lists a handful of resources to prove the store credentials work
func (s *galleryService) Probe(ctx context.Context) (*models.MediaProbe, error) {
	page, err := s.store.Search(ctx, media.SearchQuery{MaxResults: probeSampleSize})
	if err != nil {
		return nil, err
	}

	samples := make([]models.GalleryImage, 0, len(page.Assets))
	for _, asset := range page.Assets {
		samples = append(samples, s.toImage(asset))
	}
	return &models.MediaProbe{TotalResources: page.TotalCount, SampleResources: samples}, nil
}

func (s *galleryService) toImage(asset media.Asset) models.GalleryImage {
	thumb, err := s.store.ThumbnailURL(asset.PublicID, thumbnailSize, thumbnailSize)
	if err != nil {
		s.log.Warn().Err(err).Str("public_id", asset.PublicID).Msg("Failed to build thumbnail URL")
	}
	return models.GalleryImage{
		PublicID:     asset.PublicID,
		URL:          asset.SecureURL,
		ThumbnailURL: thumb,
		Width:        asset.Width,
		Height:       asset.Height,
		Format:       asset.Format,
		CreatedAt:    asset.CreatedAt,
		ResourceType: asset.ResourceType,
	}
}
