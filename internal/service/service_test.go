package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apparel-site-api/internal/config"
	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/mocks"
	"github.com/apparel-site-api/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	services  *Services
	articles  *mocks.MockArticleRepository
	catalogue *mocks.MockCatalogueRepository
	messages  *mocks.MockMessageRepository
	store     *mocks.MockMediaStore
}

func newTestEnv(tb testing.TB) *testEnv {
	tb.Helper()
	repos, articles, catalogue, messages := mocks.NewMockRepositories()
	store := mocks.NewMockMediaStore()
	cfg := &config.Config{Media: config.MediaConfig{DeleteConcurrency: 4}}
	return &testEnv{
		services:  NewServices(repos, store, cfg, zerolog.Nop()),
		articles:  articles,
		catalogue: catalogue,
		messages:  messages,
		store:     store,
	}
}

func strPtr(s string) *string { return &s }

func validArticleInput(title string) *models.ArticleInput {
	return &models.ArticleInput{
		Title:    strPtr(title),
		Category: strPtr("Manufacturing"),
		Author:   strPtr("Editorial Team"),
	}
}

func stageFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestArticleService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.Article.(*articleService)
	svc.now = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }

	article, err := svc.Create(context.Background(), validArticleInput("  Cotton vs. Polyester: 2024 Guide!  "))
	require.NoError(t, err)

	assert.Equal(t, "cotton-vs-polyester-2024-guide", article.Slug)
	assert.Equal(t, "Cotton vs. Polyester: 2024 Guide!", article.Title)
	assert.Equal(t, "March 5, 2024", article.Date)
	assert.Equal(t, "March 5, 2024", article.PublishDate)
	assert.Equal(t, "0", article.Likes)
	assert.Equal(t, "0", article.Shares)
	assert.Equal(t, models.ArticleStatusDraft, article.Status)
	assert.NotNil(t, article.Content)
	assert.NotNil(t, article.SidebarItems)
	assert.Len(t, env.articles.Articles, 1)
}

func TestArticleService_CreateDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Article.Create(ctx, validArticleInput("Fabric Care"))
	require.NoError(t, err)

	_, err = env.services.Article.Create(ctx, validArticleInput("Fabric Care"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, env.articles.Articles, 1)
}

func TestArticleService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Article.Create(context.Background(), &models.ArticleInput{Title: strPtr("No author")})
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"category", "author"}, fields)
}

func TestArticleService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.services.Article.Create(ctx, validArticleInput("Screen Printing Basics"))
	require.NoError(t, err)

	byID, err := env.services.Article.Resolve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := env.services.Article.Resolve(ctx, "screen-printing-basics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = env.services.Article.Resolve(ctx, "no-such-article")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.services.Article.Resolve(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleService_FindByIDSkipsMalformedIDs(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Article.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, env.articles.GetByIDCalls)
}

func TestArticleService_UpdateMerges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := validArticleInput("Dye Lots Explained")
	input.Excerpt = strPtr("Why colours drift")
	created, err := env.services.Article.Create(ctx, input)
	require.NoError(t, err)

	published := models.ArticleStatusPublished
	updated, err := env.services.Article.Update(ctx, created.ID, &models.ArticleInput{Status: &published})
	require.NoError(t, err)

	assert.Equal(t, models.ArticleStatusPublished, updated.Status)
	assert.Equal(t, "Why colours drift", updated.Excerpt)
	assert.Equal(t, "dye-lots-explained", updated.Slug)

	stored, err := env.services.Article.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusPublished, stored.Status)
}

func TestArticleService_UpdateSlugConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Article.Create(ctx, validArticleInput("First"))
	require.NoError(t, err)
	second, err := env.services.Article.Create(ctx, validArticleInput("Second"))
	require.NoError(t, err)

	_, err = env.services.Article.Update(ctx, second.ID, &models.ArticleInput{Slug: strPtr("first")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.services.Article.Update(ctx, uuid.New().String(), &models.ArticleInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleService_DeleteRemovesHeroImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.AddImage("blog-articles/hero", time.Now())
	input := validArticleInput("With Hero")
	input.HeroImg = strPtr("https://media.test/image/upload/v1/blog-articles/hero.jpg")
	created, err := env.services.Article.Create(ctx, input)
	require.NoError(t, err)

	require.NoError(t, env.services.Article.Delete(ctx, created.ID))

	assert.Empty(t, env.articles.Articles)
	assert.Equal(t, []string{"image:blog-articles/hero"}, env.store.DestroyedIDs())
}

func TestArticleService_DeleteWithMalformedHeroImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := validArticleInput("Legacy Hero")
	input.HeroImg = strPtr("/d40778b465d9694b0254aa11cf3949f80782e3b6.jpg")
	created, err := env.services.Article.Create(ctx, input)
	require.NoError(t, err)

	require.NoError(t, env.services.Article.Delete(ctx, created.ID))

	assert.Empty(t, env.articles.Articles)
	assert.Empty(t, env.store.DestroyedIDs())
}

func TestArticleService_DeleteSurvivesStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.DestroyErrors["blog-articles/hero"] = errors.New("store unavailable")
	input := validArticleInput("Store Down")
	input.HeroImg = strPtr("https://media.test/image/upload/v1/blog-articles/hero.jpg")
	created, err := env.services.Article.Create(ctx, input)
	require.NoError(t, err)

	require.NoError(t, env.services.Article.Delete(ctx, created.ID))
	assert.Empty(t, env.articles.Articles)
}

func TestArticleService_UploadHeroImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Article.UploadHeroImage(ctx, models.FileUpload{Path: "x.txt", ContentType: "text/plain"})
	assert.ErrorIs(t, err, ErrValidation)

	asset, err := env.services.Article.UploadHeroImage(ctx, models.FileUpload{
		Path:        stageFile(t, "hero.jpg", "jpeg"),
		Name:        "hero.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Contains(t, asset.PublicID, "blog-articles/")
	assert.NotEmpty(t, asset.URL)
}

func TestCatalogueService_UploadRejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Catalogue.Upload(context.Background(), models.FileUpload{
		Path: "brochure.docx", Name: "brochure.docx", Size: 100, ContentType: "application/msword",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, env.store.Uploads)
}

func TestCatalogueService_UploadRejectsOversize(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Catalogue.Upload(context.Background(), models.FileUpload{
		Path: "big.pdf", Name: "big.pdf", Size: MaxCatalogueSize + 1, ContentType: "application/pdf",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, env.store.Uploads)
}

func TestCatalogueService_Upload(t *testing.T) {
	env := newTestEnv(t)

	entry, err := env.services.Catalogue.Upload(context.Background(), models.FileUpload{
		Path:        stageFile(t, "spring.pdf", "not really a pdf"),
		Name:        "Spring 2024.pdf",
		Size:        2_453_000,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "Spring 2024.pdf", entry.Name)
	assert.Equal(t, "2.34 MB", entry.Size)
	assert.Nil(t, entry.Pages, "unreadable PDFs carry no page count")
	assert.Regexp(t, `^catalogue/pdf_`, entry.PublicID)

	require.Len(t, env.store.Uploads, 1)
	assert.Equal(t, media.ResourceRaw, env.store.Uploads[0].ResourceType)
	assert.Len(t, env.catalogue.Entries, 1)
}

func TestCatalogueService_UploadCompensatesFailedInsert(t *testing.T) {
	env := newTestEnv(t)
	env.catalogue.InsertError = errors.New("db down")

	_, err := env.services.Catalogue.Upload(context.Background(), models.FileUpload{
		Path:        stageFile(t, "spring.pdf", "%PDF-"),
		Name:        "spring.pdf",
		Size:        10,
		ContentType: "application/pdf",
	})
	require.Error(t, err)

	destroyed := env.store.DestroyedIDs()
	require.Len(t, destroyed, 1)
	assert.Regexp(t, `^raw:catalogue/pdf_`, destroyed[0])
	assert.Empty(t, env.store.Assets)
}

func TestCatalogueService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.services.Catalogue.Upload(ctx, models.FileUpload{
		Path: stageFile(t, "a.pdf", "%PDF-"), Name: "a.pdf", Size: 5, ContentType: "application/pdf",
	})
	require.NoError(t, err)

	require.NoError(t, env.services.Catalogue.Delete(ctx, entry.ID))
	assert.Empty(t, env.catalogue.Entries)
	assert.Equal(t, []string{"raw:" + entry.PublicID}, env.store.DestroyedIDs())

	assert.ErrorIs(t, env.services.Catalogue.Delete(ctx, entry.ID), ErrNotFound)
	assert.ErrorIs(t, env.services.Catalogue.Delete(ctx, "bogus"), ErrNotFound)
}

func TestMessageService_SubmitDefaults(t *testing.T) {
	tests := []struct {
		name        string
		input       models.MessageInput
		wantName    string
		wantSubject string
	}{
		{
			name:        "name supplied",
			input:       models.MessageInput{Name: "Ana", Company: "Acme", Email: "ana@acme.com", Message: "Hi"},
			wantName:    "Ana",
			wantSubject: "Contact form submission from Acme",
		},
		{
			name:        "company stands in for name",
			input:       models.MessageInput{Company: "Acme", Email: "ops@acme.com", Message: "Hi"},
			wantName:    "Acme",
			wantSubject: "Contact form submission from Acme",
		},
		{
			name:        "anonymous visitor",
			input:       models.MessageInput{Email: "x@y.io", Subject: "Quote", Message: "Hi"},
			wantName:    "Website Visitor",
			wantSubject: "Quote",
		},
		{
			name:        "no company no subject",
			input:       models.MessageInput{Email: "x@y.io", Message: "Hi"},
			wantName:    "Website Visitor",
			wantSubject: "Contact form submission from website visitor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			msg, err := env.services.Message.Submit(context.Background(), &tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, msg.Name)
			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.Equal(t, models.MessageStatusNew, msg.Status)
		})
	}
}

func TestMessageService_SubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	path := stageFile(t, "brief.pdf", "brief")

	for _, input := range []models.MessageInput{
		{Message: "Hi"},
		{Email: "ana@acme.com"},
		{Email: "not-an-email", Message: "Hi"},
	} {
		_, err := env.services.Message.Submit(context.Background(), &input, &models.FileUpload{Path: path, Name: "brief.pdf"})
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, env.store.Uploads, "invalid submissions upload nothing")
	assert.Empty(t, env.messages.Messages)
}

func TestMessageService_AttachmentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	msg, err := env.services.Message.Submit(ctx,
		&models.MessageInput{Email: "ana@acme.com", Message: "See attached"},
		&models.FileUpload{Path: stageFile(t, "logo.png", "png"), Name: "logo.png", ContentType: "image/png"},
	)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", msg.FileName)
	assert.Contains(t, msg.FileURL, "/contact-files/")

	require.NoError(t, env.services.Message.Delete(ctx, msg.ID))
	assert.Empty(t, env.messages.Messages)

	destroyed := env.store.DestroyedIDs()
	require.Len(t, destroyed, 1)
	assert.Regexp(t, `^image:contact-files/asset\d+$`, destroyed[0])
}

func TestMessageService_SubmitCompensatesFailedInsert(t *testing.T) {
	env := newTestEnv(t)
	env.messages.InsertError = errors.New("db down")

	_, err := env.services.Message.Submit(context.Background(),
		&models.MessageInput{Email: "ana@acme.com", Message: "Hi"},
		&models.FileUpload{Path: stageFile(t, "logo.png", "png"), Name: "logo.png"},
	)
	require.Error(t, err)
	assert.Empty(t, env.store.Assets)
}

func TestMessageService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	msg, err := env.services.Message.Submit(ctx, &models.MessageInput{Email: "a@b.co", Message: "Hi"}, nil)
	require.NoError(t, err)

	_, err = env.services.Message.UpdateStatus(ctx, msg.ID, "archived")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.services.Message.UpdateStatus(ctx, uuid.New().String(), models.MessageStatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := env.services.Message.UpdateStatus(ctx, msg.ID, models.MessageStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusInProgress, updated.Status)

	views, err := env.services.Message.List(ctx, string(models.MessageStatusInProgress))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, msg.ID, views[0].ID)

	views, err = env.services.Message.List(ctx, string(models.MessageStatusNew))
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestMessageService_ListFormatsSubmittedAt(t *testing.T) {
	env := newTestEnv(t)
	submitted := time.Date(2024, time.July, 1, 9, 5, 0, 0, time.UTC)
	id := uuid.New().String()
	env.messages.Messages[id] = &models.Message{
		ID: id, Company: "Acme", Email: "a@b.co", Status: models.MessageStatusNew, SubmittedAt: submitted,
	}

	views, err := env.services.Message.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, submitted.Local().Format("2006-01-02 15:04"), views[0].SubmittedAt)
	assert.Equal(t, "Acme", views[0].Name)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 100, ClampPageSize(0))
	assert.Equal(t, 100, ClampPageSize(-3))
	assert.Equal(t, 1, ClampPageSize(1))
	assert.Equal(t, 250, ClampPageSize(250))
	assert.Equal(t, 500, ClampPageSize(5000))
}

func TestGalleryService_List(t *testing.T) {
	env := newTestEnv(t)
	base := time.Now().Add(-time.Hour)
	env.store.AddImage("gallery/old", base)
	env.store.AddImage("gallery/new", base.Add(time.Minute))
	env.store.AddImage("blog-articles/hero", base.Add(2*time.Minute))

	page, err := env.services.Gallery.List(context.Background(), models.GalleryQuery{Folder: "gallery"})
	require.NoError(t, err)

	require.Len(t, page.Images, 2)
	assert.Equal(t, "gallery/new", page.Images[0].PublicID)
	assert.Equal(t, 2, page.TotalCount)
	assert.Contains(t, page.Images[0].ThumbnailURL, "c_fill")
	assert.Contains(t, page.Images[0].ThumbnailURL, "w_400")
}

func TestGalleryService_DeleteAllCountsPartialFailures(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 7; i++ {
		env.store.AddImage("gallery/img"+string(rune('a'+i)), time.Now())
	}
	env.store.DestroyErrors["gallery/imgb"] = errors.New("rate limited")
	env.store.DestroyErrors["gallery/imge"] = errors.New("rate limited")

	result, err := env.services.Gallery.DeleteAll(context.Background(), "gallery")
	require.NoError(t, err)

	assert.Equal(t, 7, result.TotalCount)
	assert.Equal(t, 5, result.DeletedCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Equal(t, result.TotalCount, result.DeletedCount+result.FailedCount)
	assert.False(t, result.HasMore)
	assert.Len(t, env.store.DestroyedIDs(), 7)
}

func TestGalleryService_DeleteAllReportsMore(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddImage("gallery/one", time.Now())
	env.store.SearchTotal = 900

	result, err := env.services.Gallery.DeleteAll(context.Background(), "gallery")
	require.NoError(t, err)
	assert.True(t, result.HasMore)
	assert.Equal(t, 1, result.DeletedCount)
}

func TestGalleryService_DeleteAllEmpty(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.services.Gallery.DeleteAll(context.Background(), "gallery")
	require.NoError(t, err)
	assert.Equal(t, models.BulkDeleteResult{}, *result)
}

func TestGalleryService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.AddImage("gallery/shirt", time.Now())

	require.NoError(t, env.services.Gallery.Delete(ctx, "gallery/shirt"))
	assert.ErrorIs(t, env.services.Gallery.Delete(ctx, "gallery/shirt"), ErrNotFound)
	assert.ErrorIs(t, env.services.Gallery.Delete(ctx, ""), ErrNotFound)
}

func TestGalleryService_UpdateMetadata(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddImage("gallery/shirt", time.Now())

	meta, err := env.services.Gallery.UpdateMetadata(context.Background(), models.ImageMetadata{
		PublicID: "gallery/shirt",
		Tags:     []string{"summer"},
		Context:  map[string]string{"alt": "Blue shirt"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"summer"}, meta.Tags)
	assert.Equal(t, "Blue shirt", meta.Context["alt"])
}

func TestGalleryService_ProbeSurfacesStoreErrors(t *testing.T) {
	env := newTestEnv(t)
	env.store.SearchError = errors.New("invalid credentials")

	_, err := env.services.Gallery.Probe(context.Background())
	var serr *media.SearchError
	assert.True(t, errors.As(err, &serr))
}

func TestMetricsService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Article.Create(ctx, validArticleInput("Counted"))
	require.NoError(t, err)
	_, err = env.services.Message.Submit(ctx, &models.MessageInput{Email: "a@b.co", Message: "Hi"}, nil)
	require.NoError(t, err)

	stats, err := env.services.Metrics.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Articles)
	assert.Equal(t, 0, stats.CatalogueEntries)
	assert.Equal(t, 1, stats.Messages["new"])
	assert.Equal(t, 0, stats.Messages["resolved"])
}
