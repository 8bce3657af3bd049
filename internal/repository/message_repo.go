package repository

import (
	"context"
	"time"

	"github.com/apparel-site-api/internal/database"
	"github.com/apparel-site-api/internal/models"
)

const messageColumns = `id, company, name, contact_number, email, subject, message, fabric, sizes,
	quantity, deadline, address, budget, file_name, file_url, status, submitted_at, created_at, updated_at`

type messageRepo struct {
	db *database.DB
}

// NewMessageRepo creates a new message repository
func NewMessageRepo(db *database.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Company, msg.Name, msg.ContactNumber, msg.Email, msg.Subject, msg.Message,
		msg.Fabric, msg.Sizes, msg.Quantity, msg.Deadline, msg.Address, msg.Budget,
		msg.FileName, msg.FileURL, msg.Status, msg.SubmittedAt, msg.CreatedAt, msg.UpdatedAt,
	)
	return mapError(err)
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = $1", id)
	msg, err := scanMessage(row)
	if err != nil {
		return nil, mapError(err)
	}
	return msg, nil
}

// List returns messages, newest submission first, optionally filtered by status
func (r *messageRepo) List(ctx context.Context, status string) ([]models.Message, error) {
	query := "SELECT " + messageColumns + " FROM messages"
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY submitted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func (r *messageRepo) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.Message, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE messages SET status = $2, updated_at = $3 WHERE id = $1 RETURNING "+messageColumns,
		id, status, time.Now().UTC(),
	)
	msg, err := scanMessage(row)
	if err != nil {
		return nil, mapError(err)
	}
	return msg, nil
}

func (r *messageRepo) Delete(ctx context.Context, id string) (*models.Message, error) {
	row := r.db.QueryRowContext(ctx, "DELETE FROM messages WHERE id = $1 RETURNING "+messageColumns, id)
	msg, err := scanMessage(row)
	if err != nil {
		return nil, mapError(err)
	}
	return msg, nil
}

func (r *messageRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM messages GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for status := range models.ValidMessageStatuses {
		counts[string(status)] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanMessage(s scanner) (*models.Message, error) {
	var msg models.Message
	err := s.Scan(
		&msg.ID, &msg.Company, &msg.Name, &msg.ContactNumber, &msg.Email, &msg.Subject, &msg.Message,
		&msg.Fabric, &msg.Sizes, &msg.Quantity, &msg.Deadline, &msg.Address, &msg.Budget,
		&msg.FileName, &msg.FileURL, &msg.Status, &msg.SubmittedAt, &msg.CreatedAt, &msg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
