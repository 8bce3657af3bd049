package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("get article: %w", sql.ErrNoRows), ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, ErrDuplicate},
		{"invalid uuid text", &pq.Error{Code: "22P02"}, ErrNotFound},
		{"other pq error", &pq.Error{Code: "23502"}, nil},
		{"other error", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.name == "other pq error" {
				var pqErr *pq.Error
				if !errors.As(got, &pqErr) {
					t.Errorf("Expected pq error to pass through, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestExpectOne(t *testing.T) {
	if err := expectOne(fakeResult{rows: 1}, nil); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
	if err := expectOne(fakeResult{rows: 0}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := expectOne(nil, &pq.Error{Code: "23505"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}
