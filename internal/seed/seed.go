// Package seed loads the starter blog articles shipped with the site.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"github.com/apparel-site-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:embed articles.json
var articlesJSON []byte

// Result summarizes a seed run
type Result struct {
	Inserted int
	Replaced int
	Skipped  int
}

// Articles decodes and validates the embedded starter articles
func Articles() ([]models.Article, error) {
	var articles []models.Article
	if err := json.Unmarshal(articlesJSON, &articles); err != nil {
		return nil, fmt.Errorf("decode seed articles: %w", err)
	}

	for i := range articles {
		if errs := validation.ValidateArticle(&articles[i]); len(errs) > 0 {
			return nil, fmt.Errorf("seed article %q is invalid: %v", articles[i].Slug, errs)
		}
	}
	return articles, nil
}

// Run inserts the starter articles. Existing slugs are skipped unless force
// is set, in which case the stored article is replaced.
func Run(ctx context.Context, repo repository.ArticleRepository, force bool, log zerolog.Logger) (*Result, error) {
	articles, err := Articles()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	now := time.Now().UTC()

	for i := range articles {
		article := articles[i]
		article.ID = uuid.New().String()
		article.CreatedAt = now
		article.UpdatedAt = now

		exists, err := repo.SlugExists(ctx, article.Slug)
		if err != nil {
			return result, fmt.Errorf("check slug %q: %w", article.Slug, err)
		}

		if exists {
			if !force {
				log.Info().Str("slug", article.Slug).Msg("Article exists, skipping")
				result.Skipped++
				continue
			}
			existing, err := repo.GetBySlug(ctx, article.Slug)
			if err != nil {
				return result, fmt.Errorf("load %q: %w", article.Slug, err)
			}
			if err := repo.Delete(ctx, existing.ID); err != nil {
				return result, fmt.Errorf("remove %q: %w", article.Slug, err)
			}
			result.Replaced++
		} else {
			result.Inserted++
		}

		if err := repo.Create(ctx, &article); err != nil {
			return result, fmt.Errorf("insert %q: %w", article.Slug, err)
		}
		log.Info().Str("slug", article.Slug).Msg("Article seeded")
	}

	return result, nil
}
