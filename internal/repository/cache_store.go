package repository

import (
	"context"
	"errors"

	"QuoteVault/pkg/cache"
)

// CacheStore adapts a cache.Service (memory, Redis, or layered) into the
// KeyValue persistence interface. Records are written without expiration:
// staleness is decided by the sync layer from the entry timestamp, and stale
// entries must stay readable as fallback data.
type CacheStore struct {
	svc cache.Service
}

func NewCacheStore(svc cache.Service) *CacheStore {
	return &CacheStore{svc: svc}
}

func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var b []byte
	if err := s.svc.Get(ctx, key, &b); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *CacheStore) Set(ctx context.Context, key string, value []byte) error {
	return s.svc.Set(ctx, key, value, 0)
}

func (s *CacheStore) Delete(ctx context.Context, key string) error {
	return s.svc.Delete(ctx, key)
}

func (s *CacheStore) Close() error {
	return s.svc.Close()
}
