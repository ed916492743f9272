// Package tokenstore persists the CLI's bearer token and its issuance
// timestamp in a local key-value store, and owns the expiry calculation.
// It is deliberately decoupled from network state: a token being present
// and fresh says nothing about whether the backend still accepts it.
package tokenstore

import (
	"context"
	"time"
)

// Storage keys. Both are always written together and cleared together.
const (
	keyAuthToken     = "authToken"
	keyAuthTimestamp = "authTimestamp"
)

// TokenTTL is the fixed client-side lifetime of a saved token. A token whose
// age reaches this value is treated as expired regardless of backend state.
const TokenTTL = 24 * time.Hour

// Store is the durable credential record.
//
// Contract:
//   - Save never reports failure to the caller; a failed write is logged and
//     the record is treated as not persisted.
//   - Get returns ok=false when no token is stored or storage is unreadable.
//   - Clear is idempotent; clearing an empty store is not an error.
//   - IsExpired returns true when no timestamp is stored or the saved token
//     is at least TokenTTL old.
type Store interface {
	Save(ctx context.Context, token string)
	Get(ctx context.Context) (token string, ok bool)
	Clear(ctx context.Context)
	IsExpired(ctx context.Context) bool
}
