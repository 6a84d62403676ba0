package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	drepo "QuoteVault/internal/domain/repository"

	"golang.org/x/sync/singleflight"
)

// Entry is the persisted cache record: a JSON payload plus the epoch-millis
// write time. Data is only first-choice while now-timestamp < ttl; after that
// it degrades to fallback-only.
type Entry[T any] struct {
	Timestamp int64 `json:"timestamp"`
	Data      T     `json:"data"`
}

// Age returns how old the entry is at the given instant.
func (e Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(e.Timestamp))
}

// SyncOutcome classifies one sync cycle.
type SyncOutcome string

const (
	// OutcomeFresh means the fetch succeeded and replaced the persisted entry.
	OutcomeFresh SyncOutcome = "fresh"
	// OutcomeHit means an unexpired persisted entry answered without a fetch.
	OutcomeHit SyncOutcome = "hit"
	// OutcomeStale means the fetch failed and an expired persisted entry was
	// surfaced as fallback, together with a non-fatal error.
	OutcomeStale SyncOutcome = "stale"
	// OutcomeEmpty means the fetch failed and nothing was ever persisted.
	OutcomeEmpty SyncOutcome = "empty"
)

// SyncResult carries the data chosen for the caller plus how it was obtained.
// Err is non-nil for OutcomeStale (non-fatal) and OutcomeEmpty (blocking).
type SyncResult[T any] struct {
	Data    T
	Outcome SyncOutcome
	Err     error
}

// Syncer implements the cache-or-fetch policy over a durable key-value store.
// Concurrent Sync calls for the same key share a single in-flight cycle.
type Syncer[T any] struct {
	kv    drepo.KeyValue
	group singleflight.Group
	now   func() time.Time
}

func NewSyncer[T any](kv drepo.KeyValue) *Syncer[T] {
	return &Syncer[T]{kv: kv, now: time.Now}
}

// Sync resolves data for key: unexpired persisted entry first, then the
// fetcher, then stale fallback. The fetcher runs at most once per key no
// matter how many callers arrive while it is outstanding.
func (s *Syncer[T]) Sync(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (T, error)) SyncResult[T] {
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.cycle(ctx, key, ttl, fetch), nil
	})
	return v.(SyncResult[T])
}

func (s *Syncer[T]) cycle(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (T, error)) SyncResult[T] {
	cached, found := s.load(ctx, key)
	if found && cached.Age(s.now()) < ttl {
		return SyncResult[T]{Data: cached.Data, Outcome: OutcomeHit}
	}

	data, err := fetch(ctx)
	if err == nil {
		s.store(ctx, key, data)
		return SyncResult[T]{Data: data, Outcome: OutcomeFresh}
	}

	if found {
		// Stale-but-available beats empty: keep the expired entry and flag
		// the failure as non-fatal.
		return SyncResult[T]{Data: cached.Data, Outcome: OutcomeStale, Err: fmt.Errorf("sync %s: %w", key, err)}
	}
	return SyncResult[T]{Outcome: OutcomeEmpty, Err: fmt.Errorf("sync %s: %w", key, err)}
}

// Peek returns the persisted entry regardless of age, for warm starts.
func (s *Syncer[T]) Peek(ctx context.Context, key string) (T, bool) {
	e, ok := s.load(ctx, key)
	return e.Data, ok
}

// Invalidate drops the persisted entry so the next Sync must fetch.
func (s *Syncer[T]) Invalidate(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, key)
}

func (s *Syncer[T]) load(ctx context.Context, key string) (Entry[T], bool) {
	b, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return Entry[T]{}, false
	}
	var e Entry[T]
	if err := json.Unmarshal(b, &e); err != nil || e.Timestamp == 0 {
		// A corrupt record reads as no record.
		return Entry[T]{}, false
	}
	return e, true
}

func (s *Syncer[T]) store(ctx context.Context, key string, data T) {
	e := Entry[T]{Timestamp: s.now().UnixMilli(), Data: data}
	b, err := json.Marshal(e)
	if err != nil {
		return
	}
	// Persistence is best-effort: a failed write degrades the next start to a
	// fetch, it does not fail the current cycle.
	_ = s.kv.Set(ctx, key, b)
}
