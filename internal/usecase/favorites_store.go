package usecase

import (
	"context"
	"encoding/json"
	"sync"

	drepo "QuoteVault/internal/domain/repository"
	"QuoteVault/pkg/logger"
)

const favoritesKey = "favorites"

// FavoritesStore is the persisted set of favorite indicator IDs. Membership
// is deliberately not validated against the live indicator collection: a
// favorite may reference an ID that currently has no matching indicator.
type FavoritesStore struct {
	mu    sync.RWMutex
	ids   []string
	index map[string]struct{}

	// serializes durable writes so overlapping toggles cannot persist an
	// older snapshot over a newer one
	persistMu sync.Mutex

	kv  drepo.KeyValue
	log *logger.Logger
}

func NewFavoritesStore(kv drepo.KeyValue, log *logger.Logger) *FavoritesStore {
	return &FavoritesStore{
		index: make(map[string]struct{}),
		kv:    kv,
		log:   log,
	}
}

// Load reads the persisted set. Missing or corrupt records start empty.
func (s *FavoritesStore) Load(ctx context.Context) {
	b, ok, err := s.kv.Get(ctx, favoritesKey)
	if err != nil || !ok {
		return
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = s.ids[:0]
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.index[id]; dup || id == "" {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}

// Toggle flips membership of id and reports the new state. The in-memory set
// updates immediately; the durable write is best-effort and never blocks the
// toggle from being visible to subsequent reads.
func (s *FavoritesStore) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	_, isFav := s.index[id]
	if isFav {
		delete(s.index, id)
		for i, v := range s.ids {
			if v == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
	} else {
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	s.mu.Unlock()

	s.persist(ctx)
	return !isFav
}

// IsFavorite is a pure membership query.
func (s *FavoritesStore) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// List returns the favorite IDs in insertion order.
func (s *FavoritesStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// persist writes the current set. The snapshot is taken under the persist
// lock, so the write that lands last always carries the newest state.
func (s *FavoritesStore) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	ids := s.List()
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, favoritesKey, b); err != nil && s.log != nil {
		s.log.Warn("favorites persist failed", logger.Error(err))
	}
}
