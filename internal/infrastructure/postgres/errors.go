package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campus-it/printstock/internal/domain"
)

// Postgres error codes this layer translates into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
)

// mapError translates driver errors into domain sentinels so handlers never
// inspect SQLSTATE. Unrecognized errors pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrProtected
	case codeCheckViolation:
		return domain.ErrIntegrity
	case codeSerializationFail, codeDeadlockDetected:
		return domain.ErrConcurrencyConflict
	}
	return err
}
