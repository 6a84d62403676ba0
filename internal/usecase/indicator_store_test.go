package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"QuoteVault/internal/domain/models"
)

// stallMetrics blocks one refresh between its sync cycle and the apply step,
// so a second cycle can finish first.
type stallMetrics struct {
	mu      sync.Mutex
	gate    chan struct{}
	entered chan struct{}
}

func (m *stallMetrics) RecordSync(string, string)      {}
func (m *stallMetrics) RecordError(string)             {}
func (m *stallMetrics) RecordBuyPrice(string, float64) {}

func (m *stallMetrics) RecordLatency(string, float64) {
	m.mu.Lock()
	gate, entered := m.gate, m.entered
	m.gate, m.entered = nil, nil
	m.mu.Unlock()
	if gate != nil {
		close(entered)
		<-gate
	}
}

func newTestIndicatorStore(src *fakeSource, kv *fakeKV) *IndicatorStore {
	return NewIndicatorStore(src, kv, nil, nil, 10*time.Minute)
}

func TestRefreshReady(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		currencyRecord("USD", "Dólar Americano/Real Brasileiro", "5,25", "1,5"),
		currencyRecord("EUR", "Euro/Real Brasileiro", 6.1, 0.3),
		{"name": "IBOVESPA", "points": 120000.0, "variation": 1.2},
	}}
	kv := newFakeKV()
	s := newTestIndicatorStore(src, kv)

	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.State() != StateReady || s.Err() != nil {
		t.Fatalf("expected ready, got %s err %v", s.State(), s.Err())
	}
	if got := len(s.Indicators()); got != 3 {
		t.Fatalf("expected 3 indicators, got %d", got)
	}
	usd := s.Indicators()[0]
	if usd.ID != "currency_USD" || usd.Buy != 5.25 || usd.Variation != 1.5 {
		t.Fatalf("unexpected normalization %+v", usd)
	}
}

func TestRefreshTTLFastPath(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		currencyRecord("USD", "Dólar", 5.0, 0.1),
	}}
	kv := newFakeKV()
	s := newTestIndicatorStore(src, kv)

	_ = s.Refresh(context.Background())
	_ = s.Refresh(context.Background())
	if src.fetchCalls() != 1 {
		t.Fatalf("expected one fetch within TTL, got %d", src.fetchCalls())
	}
}

func TestRefreshStaleFallback(t *testing.T) {
	kv := newFakeKV()
	stale := Entry[[]models.Indicator]{
		Timestamp: time.Now().Add(-24 * time.Hour).UnixMilli(),
		Data: []models.Indicator{
			{ID: "currency_USD", Type: models.IndicatorCurrency, Code: "USD", Name: "Dólar", Buy: 4.9},
		},
	}
	b, _ := json.Marshal(stale)
	_ = kv.Set(context.Background(), indicatorsKey, b)

	src := &fakeSource{err: errors.New("network down")}
	s := newTestIndicatorStore(src, kv)

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("stale fallback must be non-fatal, got %v", err)
	}
	if s.State() != StateReadyWithError || s.Err() == nil {
		t.Fatalf("expected ready-with-error, got %s err %v", s.State(), s.Err())
	}
	inds := s.Indicators()
	if len(inds) != 1 || inds[0].Buy != 4.9 {
		t.Fatalf("expected stale data, got %+v", inds)
	}
}

func TestRefreshEmptyError(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	s := newTestIndicatorStore(src, newFakeKV())

	if err := s.Refresh(context.Background()); err == nil {
		t.Fatalf("expected blocking error when no cache exists")
	}
	if s.State() != StateReadyWithError {
		t.Fatalf("unexpected state %s", s.State())
	}
	if len(s.Indicators()) != 0 {
		t.Fatalf("expected empty collection")
	}
}

func TestWarmFromPersisted(t *testing.T) {
	kv := newFakeKV()
	old := Entry[[]models.Indicator]{
		Timestamp: time.Now().Add(-48 * time.Hour).UnixMilli(),
		Data: []models.Indicator{
			{ID: "currency_USD", Type: models.IndicatorCurrency, Code: "USD", Name: "Dólar", Buy: 5.0},
		},
	}
	b, _ := json.Marshal(old)
	_ = kv.Set(context.Background(), indicatorsKey, b)

	s := newTestIndicatorStore(&fakeSource{}, kv)
	s.Warm(context.Background())
	if s.State() != StateReady || len(s.Indicators()) != 1 {
		t.Fatalf("expected warmed store, got %s with %d", s.State(), len(s.Indicators()))
	}
}

func TestCurrenciesExcludesTourism(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		currencyRecord("USD", "Dólar Americano/Real Brasileiro", 5.0, 0.1),
		currencyRecord("USD", "Dólar Turismo", 5.2, 0.1),
		{"name": "IBOVESPA", "points": 120000.0, "variation": 1.2},
	}}
	s := newTestIndicatorStore(src, newFakeKV())
	_ = s.Refresh(context.Background())

	got := s.Currencies()
	if len(got) != 1 || got[0].Name != "Dólar Americano/Real Brasileiro" {
		t.Fatalf("unexpected currencies view %+v", got)
	}
	if len(s.Indexes()) != 1 {
		t.Fatalf("unexpected indexes view")
	}
}

func TestByCodesFollowsBackingOrder(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		currencyRecord("USD", "Dólar", 5.0, 0.1),
		currencyRecord("EUR", "Euro", 6.0, 0.2),
		currencyRecord("CAD", "Dólar Canadense", 3.9, 0.0),
	}}
	s := newTestIndicatorStore(src, newFakeKV())
	_ = s.Refresh(context.Background())

	got := s.ByCodes([]string{"cad", "USD"})
	if len(got) != 2 || got[0].Code != "USD" || got[1].Code != "CAD" {
		t.Fatalf("expected backing order USD,CAD got %+v", got)
	}
}

func TestIndexesMatching(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		{"name": "IBOVESPA", "points": 120000.0, "variation": 1.2},
		{"name": "NASDAQ", "points": 20000.0, "variation": -0.4},
		{"name": "CAC 40", "points": 8000.0, "variation": 0.1},
	}}
	s := newTestIndicatorStore(src, newFakeKV())
	_ = s.Refresh(context.Background())

	got := s.IndexesMatching([]string{"IBOVESPA", "NASDAQ"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestBuyPriceLookup(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		currencyRecord("USD", "Dólar", 5.5, 0.1),
	}}
	s := newTestIndicatorStore(src, newFakeKV())
	_ = s.Refresh(context.Background())

	if p, ok := s.BuyPrice("usd"); !ok || p != 5.5 {
		t.Fatalf("unexpected price %v %v", p, ok)
	}
	if _, ok := s.BuyPrice("XYZ"); ok {
		t.Fatalf("expected miss for unknown code")
	}
}

func TestRefreshDiscardsOutOfOrderCompletion(t *testing.T) {
	src := &fakeSource{records: []map[string]interface{}{
		currencyRecord("USD", "Dólar", "5,00", "0,1"),
	}}
	kv := newFakeKV()
	gate := make(chan struct{})
	entered := make(chan struct{})
	s := NewIndicatorStore(src, kv, &stallMetrics{gate: gate, entered: entered}, nil, 10*time.Minute)

	firstDone := make(chan struct{})
	go func() {
		_ = s.Refresh(context.Background())
		close(firstDone)
	}()
	// first cycle has fetched the old collection but not applied it yet
	<-entered

	if err := s.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	src.mu.Lock()
	src.records = []map[string]interface{}{
		currencyRecord("USD", "Dólar", "5,50", "0,2"),
		currencyRecord("EUR", "Euro", "6,10", "0,3"),
	}
	src.mu.Unlock()
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	close(gate)
	<-firstDone

	inds := s.Indicators()
	if len(inds) != 2 || inds[0].Buy != 5.5 {
		t.Fatalf("stalled first cycle overwrote newer data: %+v", inds)
	}
	if s.State() != StateReady || s.Err() != nil {
		t.Fatalf("expected ready, got %s err %v", s.State(), s.Err())
	}
}
