package indicator

import (
	"testing"

	"QuoteVault/internal/domain/models"
)

func TestNormalizeCurrency(t *testing.T) {
	n := NewNormalizer()
	ind, ok := n.NormalizeOne(map[string]interface{}{
		"code":      "USD",
		"name":      "Dólar Americano/Real Brasileiro",
		"buy":       "5,25",
		"sell":      "5,30",
		"variation": "1,5",
	})
	if !ok {
		t.Fatalf("expected currency record to normalize")
	}
	if ind.ID != "currency_USD" || ind.Type != models.IndicatorCurrency {
		t.Fatalf("unexpected identity %s %s", ind.ID, ind.Type)
	}
	if ind.Buy != 5.25 || ind.Variation != 1.5 {
		t.Fatalf("unexpected numerics buy=%v variation=%v", ind.Buy, ind.Variation)
	}
	if ind.Sell == nil || *ind.Sell != 5.3 {
		t.Fatalf("unexpected sell %v", ind.Sell)
	}
}

func TestNormalizeIndex(t *testing.T) {
	n := NewNormalizer()
	ind, ok := n.NormalizeOne(map[string]interface{}{
		"name":      "IBOVESPA",
		"points":    137400.12,
		"variation": -0.42,
	})
	if !ok {
		t.Fatalf("expected index record to normalize")
	}
	if ind.ID != "index_IBOVESPA" || ind.Type != models.IndicatorIndex {
		t.Fatalf("unexpected identity %s %s", ind.ID, ind.Type)
	}
	if ind.Points == nil || *ind.Points != 137400.12 {
		t.Fatalf("unexpected points %v", ind.Points)
	}
	if ind.PrimaryValue() != 137400.12 {
		t.Fatalf("unexpected primary value %v", ind.PrimaryValue())
	}
}

func TestNormalizeMissingSell(t *testing.T) {
	n := NewNormalizer()
	ind, ok := n.NormalizeOne(map[string]interface{}{
		"code":      "EUR",
		"name":      "Euro/Real Brasileiro",
		"buy":       6.1,
		"sell":      nil,
		"variation": 0.2,
	})
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if ind.Sell != nil {
		t.Fatalf("expected nil sell, got %v", *ind.Sell)
	}
}

func TestNormalizeDropsAmbiguous(t *testing.T) {
	n := NewNormalizer()
	records := []map[string]interface{}{
		{"code": "USD", "name": "Dólar", "buy": 5.0, "variation": 0.1},
		{"name": "IBOVESPA", "variation": 1.0, "points": 120000.0},
		{"foo": "bar"},                   // neither variant
		{"name": "NoVariation"},          // index without variation
		{"code": "GBP", "name": "Libra"}, // currency without buy/variation
	}
	got := n.Normalize(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 normalized records, got %d", len(got))
	}
}
