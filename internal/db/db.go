package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/david/tender-finder/internal/reconcile"
)

// Connect opens a pool for dsn and checks it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, &reconcile.StoreError{Op: "connect", Err: errors.New("database url is required")}
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, &reconcile.StoreError{Op: "connect", Err: fmt.Errorf("error parsing db config: %w", err)}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &reconcile.StoreError{Op: "connect", Err: fmt.Errorf("error connecting to db: %w", err)}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		if isAuthFailure(err) {
			return nil, reconcile.AuthError(err)
		}
		return nil, &reconcile.StoreError{Op: "connect", Err: fmt.Errorf("error pinging db: %w", err)}
	}

	return pool, nil
}

// isAuthFailure reports SQLSTATE class 28 (invalid authorization).
func isAuthFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "28"
}
