// Package sessions holds the session store contract shared by every service
// in the fleet. A session token is live iff a record keyed by the token's
// exact string value currently exists in the store; the store's native TTL is
// the only expiry mechanism. The core protocol uses exactly two operations,
// set-with-TTL and get, so the contract exposes nothing else.
package sessions

import (
	"context"
	"time"
)

// Store is the shared key-value session medium.
//
// Implementations must provide atomic set-with-TTL and get at their own API
// granularity; the protocol builds no locking on top. Concurrent writes to
// the same key race benignly: last write wins and either write resets the
// TTL, which is all the protocol needs.
//
//go:generate mockgen -source=$GOFILE -destination=../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
type Store interface {
	// Set writes value under key with the given TTL, overwriting any
	// previous value and resetting any previous TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value for key and whether the key is present. A
	// missing or expired key is (_, false, nil); only transport-level
	// failures return a non-nil error.
	Get(ctx context.Context, key string) (string, bool, error)
}
