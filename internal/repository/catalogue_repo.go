package repository

import (
	"context"
	"database/sql"

	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/internal/models"
)

const catalogueColumns = `id, name, url, public_id, size, pages, uploaded_at`

type catalogueRepo struct {
	db *database.DB
}

// NewCatalogueRepo creates a new catalogue repository
func NewCatalogueRepo(db *database.DB) CatalogueRepository {
	return &catalogueRepo{db: db}
}

func (r *catalogueRepo) Create(ctx context.Context, entry *models.CatalogueEntry) error {
	var pages sql.NullInt64
	if entry.Pages != nil {
		pages = sql.NullInt64{Int64: int64(*entry.Pages), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalogue_entries (`+catalogueColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Name, entry.URL, entry.PublicID, entry.Size, pages, entry.UploadedAt,
	)
	return mapError(err)
}

func (r *catalogueRepo) GetByID(ctx context.Context, id string) (*models.CatalogueEntry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+catalogueColumns+" FROM catalogue_entries WHERE id = $1", id)
	entry, err := scanCatalogueEntry(row)
	if err != nil {
		return nil, mapError(err)
	}
	return entry, nil
}

// List returns every entry, most recently uploaded first
func (r *catalogueRepo) List(ctx context.Context) ([]models.CatalogueEntry, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+catalogueColumns+" FROM catalogue_entries ORDER BY uploaded_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.CatalogueEntry, 0)
	for rows.Next() {
		entry, err := scanCatalogueEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *catalogueRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM catalogue_entries WHERE id = $1", id)
	return expectOne(result, err)
}

func (r *catalogueRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalogue_entries").Scan(&count)
	return count, err
}

func scanCatalogueEntry(s scanner) (*models.CatalogueEntry, error) {
	var entry models.CatalogueEntry
	var pages sql.NullInt64

	if err := s.Scan(&entry.ID, &entry.Name, &entry.URL, &entry.PublicID, &entry.Size, &pages, &entry.UploadedAt); err != nil {
		return nil, err
	}
	if pages.Valid {
		n := int(pages.Int64)
		entry.Pages = &n
	}
	return &entry, nil
}
