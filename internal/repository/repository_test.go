package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/apparel-site-api/internal/mocks"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticle(slug string) *models.Article {
	return &models.Article{
		ID:       uuid.New().String(),
		Slug:     slug,
		Title:    "Title " + slug,
		Category: "News",
		Author:   "Staff",
		Status:   models.ArticleStatusPublished,
	}
}

// unreachableRedis points at a closed port so every command fails fast
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

// liveRedis connects to REDIS_URL, skipping when no server is available
func liveRedis(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCachedArticleRepo_FallsThroughWhenRedisIsDown(t *testing.T) {
	inner := mocks.NewMockArticleRepository()
	repo := repository.NewCachedArticleRepo(inner, unreachableRedis(t), time.Minute, zerolog.Nop())
	ctx := context.Background()

	article := newArticle("cache-miss")
	require.NoError(t, repo.Create(ctx, article))

	got, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Slug, got.Slug)

	got, err = repo.GetBySlug(ctx, "cache-miss")
	require.NoError(t, err)
	assert.Equal(t, article.ID, got.ID)

	article.Title = "Changed"
	require.NoError(t, repo.Update(ctx, article))
	require.NoError(t, repo.Delete(ctx, article.ID))

	_, err = repo.GetByID(ctx, article.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCachedArticleRepo_ServesFromCache(t *testing.T) {
	client := liveRedis(t)
	inner := mocks.NewMockArticleRepository()
	repo := repository.NewCachedArticleRepo(inner, client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	article := newArticle("cached-" + uuid.New().String()[:8])
	require.NoError(t, repo.Create(ctx, article))
	t.Cleanup(func() { repo.Delete(context.Background(), article.ID) })

	_, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	callsAfterFirst := inner.GetByIDCalls

	_, err = repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, inner.GetByIDCalls, "second lookup should hit the cache")
}

func TestCachedArticleRepo_UpdateInvalidatesOldSlug(t *testing.T) {
	client := liveRedis(t)
	inner := mocks.NewMockArticleRepository()
	repo := repository.NewCachedArticleRepo(inner, client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	article := newArticle("old-" + suffix)
	require.NoError(t, repo.Create(ctx, article))
	t.Cleanup(func() { repo.Delete(context.Background(), article.ID) })

	_, err := repo.GetBySlug(ctx, article.Slug)
	require.NoError(t, err)

	updated := *article
	updated.Slug = "new-" + suffix
	require.NoError(t, repo.Update(ctx, &updated))

	_, err = repo.GetBySlug(ctx, "old-"+suffix)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-"+suffix, got.Slug)
}
