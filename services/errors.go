package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "redsocial/pkg/errors"
)

// uniqueViolation reports whether err is a Postgres 23505 on the given
// constraint. An empty constraint matches any unique violation.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// foreignKeyViolation reports whether err is a Postgres 23503, i.e. a
// referenced user (or post) row does not exist.
func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// storeErr translates transport-level failures into the unavailable kind
// and annotates everything else. Server-reported errors (constraint
// violations and friends) pass through for the caller to classify.
func storeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrStoreUnavailable(err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
