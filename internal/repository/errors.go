package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrInvalidReference is returned when a foreign key points at a missing row.
var ErrInvalidReference = errors.New("invalid reference")

const (
	pgInvalidTextRepresentation = "22P02"
	pgForeignKeyViolation       = "23503"
)

// mapErr translates driver errors into repository sentinels.
// A malformed UUID in a lookup can never match a row, so it maps to ErrNotFound.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return ErrNotFound
		case pgForeignKeyViolation:
			return ErrInvalidReference
		}
	}
	return err
}

// execOne maps a command tag with zero affected rows to ErrNotFound.
func execOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
