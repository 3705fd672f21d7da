// Package metadata is the client's local key/value store (SQLite). It holds
// the session state the CLI keeps between runs, such as the access token.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyEmail       = "email"
)

// Repository stores small opaque values by key.
//
// Contract:
//   - Get returns common.ErrorNotFound for an absent key.
//   - Set inserts or overwrites.
//   - Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
