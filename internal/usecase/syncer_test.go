package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSyncFreshWritesEntry(t *testing.T) {
	kv := newFakeKV()
	s := NewSyncer[[]string](kv)

	res := s.Sync(context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if res.Outcome != OutcomeFresh || res.Err != nil {
		t.Fatalf("unexpected outcome %s err %v", res.Outcome, res.Err)
	}
	if len(res.Data) != 2 {
		t.Fatalf("unexpected data %v", res.Data)
	}

	b, ok, _ := kv.Get(context.Background(), "k")
	if !ok {
		t.Fatalf("expected persisted entry")
	}
	var e Entry[[]string]
	if err := json.Unmarshal(b, &e); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	if e.Timestamp == 0 || len(e.Data) != 2 {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestSyncHitSkipsFetch(t *testing.T) {
	kv := newFakeKV()
	s := NewSyncer[[]string](kv)

	s.Sync(context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})

	res := s.Sync(context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		t.Fatalf("fetch must not run on cache hit")
		return nil, nil
	})
	if res.Outcome != OutcomeHit {
		t.Fatalf("unexpected outcome %s", res.Outcome)
	}
	if len(res.Data) != 1 || res.Data[0] != "a" {
		t.Fatalf("unexpected data %v", res.Data)
	}
}

func TestSyncStaleFallback(t *testing.T) {
	kv := newFakeKV()
	s := NewSyncer[[]string](kv)

	// entry older than its TTL
	old := Entry[[]string]{Timestamp: time.Now().Add(-time.Hour).UnixMilli(), Data: []string{"stale"}}
	b, _ := json.Marshal(old)
	_ = kv.Set(context.Background(), "k", b)

	res := s.Sync(context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		return nil, errors.New("network down")
	})
	if res.Outcome != OutcomeStale {
		t.Fatalf("unexpected outcome %s", res.Outcome)
	}
	if res.Err == nil {
		t.Fatalf("expected non-fatal error")
	}
	if len(res.Data) != 1 || res.Data[0] != "stale" {
		t.Fatalf("expected stale data, got %v", res.Data)
	}
}

func TestSyncEmptyWhenNothingPersisted(t *testing.T) {
	kv := newFakeKV()
	s := NewSyncer[[]string](kv)

	res := s.Sync(context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		return nil, errors.New("network down")
	})
	if res.Outcome != OutcomeEmpty || res.Err == nil {
		t.Fatalf("unexpected outcome %s err %v", res.Outcome, res.Err)
	}
}

func TestSyncCorruptEntryIsMiss(t *testing.T) {
	kv := newFakeKV()
	_ = kv.Set(context.Background(), "k", []byte("{not json"))
	s := NewSyncer[[]string](kv)

	res := s.Sync(context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		return []string{"fresh"}, nil
	})
	if res.Outcome != OutcomeFresh {
		t.Fatalf("unexpected outcome %s", res.Outcome)
	}
}

func TestSyncSingleFlight(t *testing.T) {
	kv := newFakeKV()
	s := NewSyncer[[]string](kv)

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []string{"x"}, nil
	}

	var wg sync.WaitGroup
	results := make([]SyncResult[[]string], 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Sync(context.Background(), "k", time.Minute, fetch)
		}(i)
	}

	// let both callers reach the group before releasing the fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly one fetch, got %d", got)
	}
	for i, res := range results {
		if res.Outcome != OutcomeFresh || len(res.Data) != 1 {
			t.Fatalf("caller %d unexpected result %+v", i, res)
		}
	}
}
