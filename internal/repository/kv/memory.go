package kv

import (
	"context"
	"sync"
	"time"

	"aurex-storefront/internal/domain"
	infracache "aurex-storefront/internal/infrastructure/cache"
	"aurex-storefront/pkg/cache"
)

// MemoryStore keeps values in a go-cache instance with no expiry. Values are
// copied in and out so callers cannot alias stored bytes. Writes share mu with
// Update, so a Set never lands inside a read-modify-write.
type MemoryStore struct {
	mu    sync.Mutex
	items cache.CacheService
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: infracache.NewMemoryCache(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, found := s.items.Get(key)
	if !found {
		observe("memory", "get", key, start, domain.ErrNotFound)
		return nil, domain.ErrNotFound
	}
	observe("memory", "get", key, start, nil)
	return append([]byte(nil), v.([]byte)...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	observe("memory", "set", key, start, nil)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Delete(key)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []byte
	if v, found := s.items.Get(key); found {
		current = append([]byte(nil), v.([]byte)...)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	s.items.Set(key, append([]byte(nil), next...), cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}
