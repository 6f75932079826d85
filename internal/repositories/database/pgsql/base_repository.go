package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bodegapos/bodega-backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, wrapStorageErr(err, "failed to begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return wrapStorageErr(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return wrapStorageErr(err, "failed to rollback transaction")
	}
	return nil
}

// isTransientErr reports whether err looks like a connectivity, timeout or
// serialization failure rather than a logic error. These are safe to retry.
func isTransientErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exceptions. 40001/40P01: serialization
		// failure and deadlock, both resolved by retrying.
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// wrapStorageErr wraps a storage failure, tagging transient ones with
// apperrors.ErrTransient so handlers can map them to a retryable response.
func wrapStorageErr(err error, msg string) error {
	if isTransientErr(err) {
		return fmt.Errorf("%s: %w: %w", msg, apperrors.ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
