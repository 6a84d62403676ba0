package usecase

import (
	"context"
	"errors"
	"sync"

	"QuoteVault/internal/domain/models"
)

// fakeKV is an in-memory KeyValue for tests.
type fakeKV struct {
	mu     sync.Mutex
	m      map[string][]byte
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{m: make(map[string][]byte)}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.m[key]
	return b, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	f.m[key] = buf
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	return nil
}

func (f *fakeKV) Close() error { return nil }

// fakeSource is a scriptable QuoteSource.
type fakeSource struct {
	mu      sync.Mutex
	records []map[string]interface{}
	err     error
	calls   int
}

func (f *fakeSource) FetchAll(_ context.Context) ([]map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) FetchHistorical(_ context.Context, _ string, _ int) ([]models.HistoricalPoint, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSource) Convert(_ context.Context, _ string, _ float64) (models.Conversion, error) {
	return models.Conversion{}, errors.New("not implemented")
}

func (f *fakeSource) fetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakePrices is a static PriceSource.
type fakePrices map[string]float64

func (f fakePrices) BuyPrice(code string) (float64, bool) {
	p, ok := f[code]
	return p, ok
}

func currencyRecord(code, name string, buy interface{}, variation interface{}) map[string]interface{} {
	return map[string]interface{}{
		"code":      code,
		"name":      name,
		"buy":       buy,
		"variation": variation,
	}
}
