package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baharkarakas/studygo-backend/internal/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return &repository.ConflictError{Constraint: pgErr.ConstraintName}
		case foreignKeyViolation:
			// the only foreign keys point at users(id)
			return repository.ErrNotFound
		}
	}
	return err
}
