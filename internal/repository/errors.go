package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the lookup
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on a unique-constraint violation
	ErrDuplicate = errors.New("duplicate record")
)

const (
	pgUniqueViolation = "23505"
	pgInvalidText     = "22P02"
)

// mapError translates driver errors into the repository sentinels.
// A malformed uuid literal can never match a row, so it maps to ErrNotFound.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgInvalidText:
			return ErrNotFound
		}
	}

	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// expectOne converts a zero-row exec result into ErrNotFound
func expectOne(result sql.Result, err error) error {
	if err != nil {
		return mapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
