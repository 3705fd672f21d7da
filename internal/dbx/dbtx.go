// Package dbx holds the handle type repositories are written against and a
// transaction helper. The server user store (pgx) and the client metadata
// store (SQLite) both use it.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX lets a repository run on a pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. The transaction commits when fn
// returns nil and rolls back when fn fails or panics; a panic is re-raised
// after the rollback.
//
// The client uses it to drop the stored session on logout:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    r := metadata.NewSQLiteRepository(tx)
//	    if err := r.Delete(ctx, metadata.KeyAccessToken); err != nil {
//	        return err
//	    }
//	    return r.Delete(ctx, metadata.KeyEmail)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	return tx.Commit()
}
