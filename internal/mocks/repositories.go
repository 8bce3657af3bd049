package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
)

// MockArticleRepository is an in-memory ArticleRepository
type MockArticleRepository struct {
	mu           sync.Mutex
	Articles     map[string]*models.Article
	InsertError  error
	GetByIDCalls int
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return m.InsertError
	}
	if m.slugTaken(article.Slug, "") {
		return repository.ErrDuplicate
	}
	m.Articles[article.ID] = copyArticle(article)
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	if m.slugTaken(article.Slug, article.ID) {
		return repository.ErrDuplicate
	}
	m.Articles[article.ID] = copyArticle(article)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetByIDCalls++
	article, ok := m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyArticle(article), nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, article := range m.Articles {
		if article.Slug == slug {
			return copyArticle(article), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	search := strings.ToLower(filter.Search)
	result := make([]models.Article, 0)
	for _, a := range m.Articles {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Excerpt), search) {
			continue
		}
		result = append(result, *copyArticle(a))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugTaken(slug, ""), nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), nil
}

func (m *MockArticleRepository) slugTaken(slug, exceptID string) bool {
	for id, a := range m.Articles {
		if a.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func copyArticle(a *models.Article) *models.Article {
	c := *a
	c.Content = append([]models.ContentBlock(nil), a.Content...)
	c.SidebarItems = append([]string(nil), a.SidebarItems...)
	return &c
}

// MockCatalogueRepository is an in-memory CatalogueRepository
type MockCatalogueRepository struct {
	mu          sync.Mutex
	Entries     map[string]*models.CatalogueEntry
	InsertError error
}

var _ repository.CatalogueRepository = (*MockCatalogueRepository)(nil)

func NewMockCatalogueRepository() *MockCatalogueRepository {
	return &MockCatalogueRepository{
		Entries: make(map[string]*models.CatalogueEntry),
	}
}

func (m *MockCatalogueRepository) Create(ctx context.Context, entry *models.CatalogueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return m.InsertError
	}
	c := *entry
	m.Entries[entry.ID] = &c
	return nil
}

func (m *MockCatalogueRepository) GetByID(ctx context.Context, id string) (*models.CatalogueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.Entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *entry
	return &c, nil
}

func (m *MockCatalogueRepository) List(ctx context.Context) ([]models.CatalogueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.CatalogueEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		result = append(result, *e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (m *MockCatalogueRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Entries, id)
	return nil
}

func (m *MockCatalogueRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries), nil
}

// MockMessageRepository is an in-memory MessageRepository
type MockMessageRepository struct {
	mu          sync.Mutex
	Messages    map[string]*models.Message
	InsertError error
}

var _ repository.MessageRepository = (*MockMessageRepository)(nil)

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		Messages: make(map[string]*models.Message),
	}
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return m.InsertError
	}
	c := *msg
	m.Messages[msg.ID] = &c
	return nil
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.Messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *msg
	return &c, nil
}

func (m *MockMessageRepository) List(ctx context.Context, status string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Message, 0)
	for _, msg := range m.Messages {
		if status != "" && string(msg.Status) != status {
			continue
		}
		result = append(result, *msg)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *MockMessageRepository) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.Messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	msg.Status = status
	c := *msg
	return &c, nil
}

func (m *MockMessageRepository) Delete(ctx context.Context, id string) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.Messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.Messages, id)
	return msg, nil
}

func (m *MockMessageRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int)
	for status := range models.ValidMessageStatuses {
		counts[string(status)] = 0
	}
	for _, msg := range m.Messages {
		counts[string(msg.Status)]++
	}
	return counts, nil
}

// NewMockRepositories wires fresh in-memory repositories into the aggregate
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockCatalogueRepository, *MockMessageRepository) {
	articles := NewMockArticleRepository()
	catalogue := NewMockCatalogueRepository()
	messages := NewMockMessageRepository()
	return &repository.Repositories{
		Article:   articles,
		Catalogue: catalogue,
		Message:   messages,
	}, articles, catalogue, messages
}
