package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/internal/models"
	"github.com/lib/pq"
)

const articleColumns = `id, slug, title, hero_img, excerpt, category, author, date, publish_date,
	likes, shares, views, status, introduction, content, sidebar_items, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	contentJSON, err := marshalContent(article.Content)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.HeroImg, article.Excerpt,
		article.Category, article.Author, article.Date, article.PublishDate,
		article.Likes, article.Shares, article.Views, article.Status, article.Introduction,
		string(contentJSON), pq.Array(nonNil(article.SidebarItems)), article.CreatedAt, article.UpdatedAt,
	)
	return mapError(err)
}

// Update writes every column of the article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	contentJSON, err := marshalContent(article.Content)
	if err != nil {
		return err
	}

	query := `
		UPDATE articles SET
			slug = $2, title = $3, hero_img = $4, excerpt = $5, category = $6, author = $7,
			date = $8, publish_date = $9, likes = $10, shares = $11, views = $12, status = $13,
			introduction = $14, content = $15, sidebar_items = $16, updated_at = $17
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.HeroImg, article.Excerpt,
		article.Category, article.Author, article.Date, article.PublishDate,
		article.Likes, article.Shares, article.Views, article.Status, article.Introduction,
		string(contentJSON), pq.Array(nonNil(article.SidebarItems)), article.UpdatedAt,
	)
	return expectOne(result, err)
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
	article, err := scanArticle(row)
	if err != nil {
		return nil, mapError(err)
	}
	return article, nil
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE slug = $1", slug)
	article, err := scanArticle(row)
	if err != nil {
		return nil, mapError(err)
	}
	return article, nil
}

// List returns articles matching the filter, newest first
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	var conditions []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", n, n))
	}

	query := "SELECT " + articleColumns + " FROM articles"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

// Delete removes an article by ID
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return expectOne(result, err)
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func scanArticle(s scanner) (*models.Article, error) {
	var article models.Article
	var contentJSON []byte
	var sidebar pq.StringArray

	err := s.Scan(
		&article.ID, &article.Slug, &article.Title, &article.HeroImg, &article.Excerpt,
		&article.Category, &article.Author, &article.Date, &article.PublishDate,
		&article.Likes, &article.Shares, &article.Views, &article.Status, &article.Introduction,
		&contentJSON, &sidebar, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Content = make([]models.ContentBlock, 0)
	if len(contentJSON) > 0 {
		if err := json.Unmarshal(contentJSON, &article.Content); err != nil {
			return nil, fmt.Errorf("decode content of article %s: %w", article.ID, err)
		}
	}
	article.SidebarItems = []string(sidebar)
	if article.SidebarItems == nil {
		article.SidebarItems = []string{}
	}

	return &article, nil
}

func marshalContent(blocks []models.ContentBlock) ([]byte, error) {
	if blocks == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return data, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// escapeLike neutralises LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
