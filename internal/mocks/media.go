package mocks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apparel-site-api/internal/media"
)

// MockMediaStore is an in-memory media.Store
type MockMediaStore struct {
	mu sync.Mutex

	// Assets is keyed by publicId
	Assets map[string]*media.Asset
	// DestroyErrors makes Destroy fail for the given publicIds
	DestroyErrors map[string]error
	// Destroyed records every Destroy call as "<resourceType>:<publicId>"
	Destroyed []string
	Uploads   []media.UploadOptions

	UploadError error
	SearchError error
	// SearchTotal overrides the reported total count when non-zero
	SearchTotal int

	seq int
}

var _ media.Store = (*MockMediaStore)(nil)

func NewMockMediaStore() *MockMediaStore {
	return &MockMediaStore{
		Assets:        make(map[string]*media.Asset),
		DestroyErrors: make(map[string]error),
	}
}

// AddImage seeds an image asset
func (m *MockMediaStore) AddImage(publicID string, createdAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Assets[publicID] = &media.Asset{
		PublicID:     publicID,
		SecureURL:    "https://media.test/image/upload/v1/" + publicID + ".jpg",
		Width:        800,
		Height:       600,
		Format:       "jpg",
		ResourceType: "image",
		CreatedAt:    createdAt,
	}
}

func (m *MockMediaStore) Upload(ctx context.Context, path string, opts media.UploadOptions) (*media.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UploadError != nil {
		return nil, &media.UploadError{Folder: opts.Folder, Err: m.UploadError}
	}

	m.seq++
	name := opts.PublicID
	if name == "" {
		name = fmt.Sprintf("asset%d", m.seq)
	}
	publicID := name
	if opts.Folder != "" {
		publicID = opts.Folder + "/" + name
	}

	rt := string(opts.ResourceType)
	if rt == "" || rt == string(media.ResourceAuto) {
		rt = string(media.ResourceImage)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	url := fmt.Sprintf("https://media.test/%s/upload/v%d/%s", rt, m.seq, publicID)
	if ext != "" {
		url += "." + ext
	}

	asset := &media.Asset{
		PublicID:     publicID,
		SecureURL:    url,
		Width:        1024,
		Height:       768,
		Format:       ext,
		ResourceType: rt,
		CreatedAt:    time.Now().UTC(),
	}
	m.Assets[publicID] = asset
	m.Uploads = append(m.Uploads, opts)

	c := *asset
	return &c, nil
}

func (m *MockMediaStore) Search(ctx context.Context, q media.SearchQuery) (*media.SearchPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SearchError != nil {
		return nil, &media.SearchError{Expression: q.Expression, Err: m.SearchError}
	}

	var matched []media.Asset
	for _, a := range m.Assets {
		if folder, ok := strings.CutPrefix(q.Expression, "folder:"); ok {
			if !strings.HasPrefix(a.PublicID, folder+"/") {
				continue
			}
		} else if a.ResourceType != "image" {
			continue
		}
		matched = append(matched, *a)
	}

	sortAssetsNewestFirst(matched)

	total := len(matched)
	if m.SearchTotal != 0 {
		total = m.SearchTotal
	}
	if q.MaxResults > 0 && len(matched) > q.MaxResults {
		matched = matched[:q.MaxResults]
	}
	if matched == nil {
		matched = []media.Asset{}
	}

	return &media.SearchPage{Assets: matched, TotalCount: total}, nil
}

func (m *MockMediaStore) Destroy(ctx context.Context, publicID string, rt media.ResourceType) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Destroyed = append(m.Destroyed, string(rt)+":"+publicID)

	if err, ok := m.DestroyErrors[publicID]; ok {
		return "", err
	}
	if _, ok := m.Assets[publicID]; !ok {
		return media.ResultNotFound, nil
	}
	delete(m.Assets, publicID)
	return media.ResultOK, nil
}

func (m *MockMediaStore) UpdateMetadata(ctx context.Context, publicID string, tags []string, attributes map[string]string) (*media.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Assets[publicID]; !ok {
		return nil, errors.New("resource not found")
	}
	return &media.Metadata{PublicID: publicID, Tags: tags, Context: attributes}, nil
}

func (m *MockMediaStore) ThumbnailURL(publicID string, width, height int) (string, error) {
	return fmt.Sprintf("https://media.test/image/upload/c_fill,f_auto,h_%d,q_auto,w_%d/%s", height, width, publicID), nil
}

// DestroyedIDs returns a snapshot of recorded Destroy calls
func (m *MockMediaStore) DestroyedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Destroyed...)
}

func sortAssetsNewestFirst(assets []media.Asset) {
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
}
