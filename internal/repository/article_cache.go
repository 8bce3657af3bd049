package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/apparel-site-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	articleIDKeyPrefix   = "article:id:"
	articleSlugKeyPrefix = "article:slug:"
)

// cachedArticleRepo is a read-through cache over single-article lookups.
// Listings always go to the database. Redis failures are logged and the
// call falls through to the wrapped repository.
type cachedArticleRepo struct {
	ArticleRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedArticleRepo wraps inner with a Redis cache
func NewCachedArticleRepo(inner ArticleRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) ArticleRepository {
	return &cachedArticleRepo{
		ArticleRepository: inner,
		client:            client,
		ttl:               ttl,
		log:               log.With().Str("component", "article_cache").Logger(),
	}
}

func (r *cachedArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.cached(ctx, articleIDKeyPrefix+id, func() (*models.Article, error) {
		return r.ArticleRepository.GetByID(ctx, id)
	})
}

func (r *cachedArticleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.cached(ctx, articleSlugKeyPrefix+slug, func() (*models.Article, error) {
		return r.ArticleRepository.GetBySlug(ctx, slug)
	})
}

func (r *cachedArticleRepo) Update(ctx context.Context, article *models.Article) error {
	previous, _ := r.ArticleRepository.GetByID(ctx, article.ID)

	if err := r.ArticleRepository.Update(ctx, article); err != nil {
		return err
	}

	keys := []string{articleIDKeyPrefix + article.ID, articleSlugKeyPrefix + article.Slug}
	if previous != nil && previous.Slug != article.Slug {
		keys = append(keys, articleSlugKeyPrefix+previous.Slug)
	}
	r.invalidate(ctx, keys...)
	return nil
}

func (r *cachedArticleRepo) Delete(ctx context.Context, id string) error {
	previous, _ := r.ArticleRepository.GetByID(ctx, id)

	if err := r.ArticleRepository.Delete(ctx, id); err != nil {
		return err
	}

	keys := []string{articleIDKeyPrefix + id}
	if previous != nil {
		keys = append(keys, articleSlugKeyPrefix+previous.Slug)
	}
	r.invalidate(ctx, keys...)
	return nil
}

func (r *cachedArticleRepo) cached(ctx context.Context, key string, load func() (*models.Article, error)) (*models.Article, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var article models.Article
		if jsonErr := json.Unmarshal(data, &article); jsonErr == nil {
			return &article, nil
		}
		r.log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		r.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}

	article, err := load()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(article); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return article, nil
}

func (r *cachedArticleRepo) invalidate(ctx context.Context, keys ...string) {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}
