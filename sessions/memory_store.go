package sessions

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore implements Store using ttlcache. It serves tests and
// single-node development where a Redis is not worth running; the TTL
// semantics match the Redis store.
type MemoryStore struct {
	cache *ttlcache.Cache[string, string]
}

// NewMemoryStore creates a new in-memory session store with automatic
// cleanup of expired entries.
func NewMemoryStore() *MemoryStore {
	cache := ttlcache.New(
		// Touch-on-hit would silently slide the TTL on reads. Sliding is
		// the Authorization Gate's job and happens through explicit Set
		// calls only.
		ttlcache.WithDisableTouchOnHit[string, string](),
	)

	go cache.Start()

	return &MemoryStore{cache: cache}
}

// Set implements Store.Set.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.cache.Set(key, value, ttl)
	return nil
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return "", false, nil
	}
	return item.Value(), true, nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() {
	s.cache.Stop()
}
