// Package dbx holds the database plumbing shared by repositories: the
// DBTX handle implemented by both *sql.DB and *sql.Tx, and transaction
// helpers that retry on PostgreSQL serialization conflicts.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the body of a transaction.
type TxFunc func(ctx context.Context, tx DBTX) error

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// DefaultTxAttempts bounds WithTxRetry when callers pass zero.
const DefaultTxAttempts = 3

var retryBase = 10 * time.Millisecond

// WithTx begins a transaction, runs fn and commits on success. It rolls
// back on error or panic; panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// IsRetryable reports whether err is a transient conflict after which the
// whole transaction can be replayed.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

// WithTxRetry runs fn in a fresh transaction up to attempts times,
// replaying it only while the failure is retryable.
func WithTxRetry(ctx context.Context, db *sql.DB, opts *sql.TxOptions, attempts uint64, fn TxFunc) error {
	if attempts == 0 {
		attempts = DefaultTxAttempts
	}
	backoff := retry.WithMaxRetries(attempts-1, retry.NewExponential(retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := WithTx(ctx, db, opts, fn)
		if IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
