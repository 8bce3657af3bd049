package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/apparel-site-api/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin/search"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// CloudinaryStore implements Store on top of the Cloudinary SDK
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
	log zerolog.Logger
}

var _ Store = (*CloudinaryStore)(nil)

// NewCloudinaryStore builds a client from account credentials. No request is made.
func NewCloudinaryStore(cfg config.MediaConfig, log zerolog.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create media client: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStore{
		cld: cld,
		log: log.With().Str("component", "media").Logger(),
	}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, path string, opts UploadOptions) (*Asset, error) {
	params := uploader.UploadParams{
		Folder:       opts.Folder,
		PublicID:     opts.PublicID,
		ResourceType: string(opts.ResourceType),
		UploadPreset: opts.UploadPreset,
	}

	res, err := s.cld.Upload.Upload(ctx, path, params)
	if err != nil {
		return nil, &UploadError{Folder: opts.Folder, Err: err}
	}
	if res.Error.Message != "" {
		return nil, &UploadError{Folder: opts.Folder, Err: errors.New(res.Error.Message)}
	}

	s.log.Debug().
		Str("public_id", res.PublicID).
		Str("folder", opts.Folder).
		Int("bytes", res.Bytes).
		Msg("Asset uploaded")

	return &Asset{
		PublicID:     res.PublicID,
		SecureURL:    res.SecureURL,
		Width:        res.Width,
		Height:       res.Height,
		Format:       res.Format,
		ResourceType: res.ResourceType,
		Bytes:        res.Bytes,
		CreatedAt:    res.CreatedAt,
	}, nil
}

func (s *CloudinaryStore) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	sortField := q.SortField
	if sortField == "" {
		sortField = "created_at"
	}

	query := search.Query{
		Expression: q.Expression,
		SortBy:     []search.SortByField{{sortField: search.Descending}},
		MaxResults: q.MaxResults,
		NextCursor: q.Cursor,
	}

	res, err := s.cld.Admin.Search(ctx, query)
	if err != nil {
		return nil, &SearchError{Expression: q.Expression, Err: err}
	}
	if res.Error.Message != "" {
		return nil, &SearchError{Expression: q.Expression, Err: errors.New(res.Error.Message)}
	}

	page := &SearchPage{
		Assets:     make([]Asset, 0, len(res.Assets)),
		NextCursor: res.NextCursor,
		TotalCount: res.TotalCount,
	}
	for _, a := range res.Assets {
		page.Assets = append(page.Assets, Asset{
			PublicID:     a.PublicID,
			SecureURL:    a.SecureURL,
			Width:        a.Width,
			Height:       a.Height,
			Format:       a.Format,
			ResourceType: a.ResourceType,
			Bytes:        a.Bytes,
			CreatedAt:    a.CreatedAt,
		})
	}
	return page, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string, rt ResourceType) (string, error) {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(rt),
	})
	if err != nil {
		return "", fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("destroy %s: %s", publicID, res.Error.Message)
	}
	return res.Result, nil
}

func (s *CloudinaryStore) UpdateMetadata(ctx context.Context, publicID string, tags []string, attributes map[string]string) (*Metadata, error) {
	res, err := s.cld.Upload.Explicit(ctx, uploader.ExplicitParams{
		PublicID: publicID,
		Type:     "upload",
		Tags:     tags,
		Context:  attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("update metadata of %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("update metadata of %s: %s", publicID, res.Error.Message)
	}

	return &Metadata{
		PublicID: res.PublicID,
		Tags:     res.Tags,
		Context:  attributes,
	}, nil
}

func (s *CloudinaryStore) ThumbnailURL(publicID string, width, height int) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("build image asset %s: %w", publicID, err)
	}
	img.Transformation = thumbnailTransformation(width, height)
	return img.String()
}

func thumbnailTransformation(width, height int) string {
	return fmt.Sprintf("c_fill,f_auto,h_%d,q_auto,w_%d", height, width)
}
