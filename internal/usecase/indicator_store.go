package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"QuoteVault/internal/domain/models"
	drepo "QuoteVault/internal/domain/repository"
	"QuoteVault/internal/service/indicator"
	"QuoteVault/pkg/logger"
)

// StoreState is the refresh state machine of the indicator store.
type StoreState string

const (
	StateIdle           StoreState = "idle"
	StateLoading        StoreState = "loading"
	StateReady          StoreState = "ready"
	StateReadyWithError StoreState = "ready-with-error"
)

// tourism-rate variants are excluded from the currencies view
const tourismNameMarker = "Turismo"

const indicatorsKey = "indicators:all"

// IndicatorStore owns the normalized indicator collection. It is the only
// writer; favorites and the wallet read from it by ID/code join. Derived views
// are recomputed from the same backing slice and keep its order.
type IndicatorStore struct {
	mu         sync.RWMutex
	indicators []models.Indicator
	state      StoreState
	err        error
	lastSync   time.Time

	// refresh sequencing: a cycle that finishes after a newer one has been
	// applied must be discarded, not written over fresher data
	nextSeq    uint64
	appliedSeq uint64

	source     drepo.QuoteSource
	normalizer *indicator.Normalizer
	syncer     *Syncer[[]models.Indicator]
	metrics    drepo.Metrics
	log        *logger.Logger
	ttl        time.Duration
}

func NewIndicatorStore(
	source drepo.QuoteSource,
	kv drepo.KeyValue,
	metrics drepo.Metrics,
	log *logger.Logger,
	ttl time.Duration,
) *IndicatorStore {
	return &IndicatorStore{
		state:      StateIdle,
		source:     source,
		normalizer: indicator.NewNormalizer(),
		syncer:     NewSyncer[[]models.Indicator](kv),
		metrics:    metrics,
		log:        log,
		ttl:        ttl,
	}
}

// Warm loads whatever was persisted, regardless of age, so a restart starts
// from the last known collection instead of an empty screen.
func (s *IndicatorStore) Warm(ctx context.Context) {
	data, ok := s.syncer.Peek(ctx, indicatorsKey)
	if !ok {
		return
	}
	s.mu.Lock()
	if s.state == StateIdle {
		s.indicators = data
		s.state = StateReady
	}
	s.mu.Unlock()
	if s.log != nil {
		s.log.Info("indicator store warmed", logger.Int("indicators", len(data)))
	}
}

// Refresh runs one sync cycle. Concurrent calls attach to the in-flight fetch
// through the syncer's single-flight policy. The returned error is non-nil
// only in the blocking case: fetch failed and nothing was ever cached.
func (s *IndicatorStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	start := time.Now()
	res := s.syncer.Sync(ctx, indicatorsKey, s.ttl, s.fetch)
	if s.metrics != nil {
		s.metrics.RecordSync(indicatorsKey, string(res.Outcome))
		s.metrics.RecordLatency("indicator_refresh", time.Since(start).Seconds())
	}

	s.mu.Lock()
	if seq < s.appliedSeq {
		// A newer cycle already finished; logical recency wins over arrival
		// order.
		s.mu.Unlock()
		return nil
	}
	s.appliedSeq = seq

	switch res.Outcome {
	case OutcomeFresh, OutcomeHit:
		s.indicators = res.Data
		s.err = nil
		s.state = StateReady
		s.lastSync = time.Now()
	case OutcomeStale:
		s.indicators = res.Data
		s.err = res.Err
		s.state = StateReadyWithError
	case OutcomeEmpty:
		s.indicators = nil
		s.err = res.Err
		s.state = StateReadyWithError
	}
	s.mu.Unlock()

	if res.Outcome == OutcomeStale && s.log != nil {
		s.log.Warn("serving stale indicators", logger.Error(res.Err))
	}
	if res.Outcome == OutcomeFresh {
		s.recordPrices(res.Data)
	}
	if res.Outcome == OutcomeEmpty {
		if s.metrics != nil {
			s.metrics.RecordError("indicator_fetch")
		}
		return res.Err
	}
	return nil
}

// Invalidate drops the persisted entry; the next Refresh must hit the network.
func (s *IndicatorStore) Invalidate(ctx context.Context) error {
	return s.syncer.Invalidate(ctx, indicatorsKey)
}

func (s *IndicatorStore) fetch(ctx context.Context) ([]models.Indicator, error) {
	records, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(records), nil
}

func (s *IndicatorStore) recordPrices(inds []models.Indicator) {
	if s.metrics == nil {
		return
	}
	for _, ind := range inds {
		if ind.Type == models.IndicatorCurrency {
			s.metrics.RecordBuyPrice(ind.Code, ind.Buy)
		}
	}
}

// State returns the current refresh state.
func (s *IndicatorStore) State() StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the current error flag, nil when the last cycle was clean.
func (s *IndicatorStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Indicators returns a copy of the whole backing collection.
func (s *IndicatorStore) Indicators() []models.Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Indicator, len(s.indicators))
	copy(out, s.indicators)
	return out
}

// Currencies returns currency indicators, excluding tourism-rate variants.
func (s *IndicatorStore) Currencies() []models.Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Indicator, 0, len(s.indicators))
	for _, ind := range s.indicators {
		if ind.Type != models.IndicatorCurrency {
			continue
		}
		if strings.Contains(ind.Name, tourismNameMarker) {
			continue
		}
		out = append(out, ind)
	}
	return out
}

// Indexes returns index indicators.
func (s *IndicatorStore) Indexes() []models.Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Indicator, 0, len(s.indicators))
	for _, ind := range s.indicators {
		if ind.Type == models.IndicatorIndex {
			out = append(out, ind)
		}
	}
	return out
}

// ByCodes returns currency indicators whose code is in the given set. Output
// order follows the backing collection, not the input set.
func (s *IndicatorStore) ByCodes(codes []string) []models.Indicator {
	want := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		want[strings.ToUpper(c)] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Indicator, 0, len(codes))
	for _, ind := range s.indicators {
		if ind.Type != models.IndicatorCurrency {
			continue
		}
		if _, ok := want[strings.ToUpper(ind.Code)]; ok {
			out = append(out, ind)
		}
	}
	return out
}

// IndexesMatching returns index indicators whose name or ID contains any of
// the given terms, case-insensitive.
func (s *IndicatorStore) IndexesMatching(terms []string) []models.Indicator {
	upper := make([]string, len(terms))
	for i, t := range terms {
		upper[i] = strings.ToUpper(t)
	}

	out := s.Indexes()
	filtered := out[:0]
	for _, ind := range out {
		name := strings.ToUpper(ind.Name)
		id := strings.ToUpper(ind.ID)
		for _, t := range upper {
			if strings.Contains(name, t) || strings.Contains(id, t) {
				filtered = append(filtered, ind)
				break
			}
		}
	}
	return filtered
}

// BuyPrice looks up the live buy price for a currency code. Used by the
// wallet valuation join.
func (s *IndicatorStore) BuyPrice(code string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ind := range s.indicators {
		if ind.Type == models.IndicatorCurrency && strings.EqualFold(ind.Code, code) {
			return ind.Buy, true
		}
	}
	return 0, false
}
