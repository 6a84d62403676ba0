package usecase

import (
	"context"
	"math"
	"reflect"
	"sort"
	"sync"
	"testing"

	"QuoteVault/internal/domain/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddTransactionValidation(t *testing.T) {
	s := NewWalletStore(newFakeKV(), fakePrices{}, nil)
	ctx := context.Background()

	cases := []models.AddTransactionRequest{
		{CurrencyCode: "US", Amount: 1, PriceAtPurchase: 1},
		{CurrencyCode: "USDT", Amount: 1, PriceAtPurchase: 1},
		{CurrencyCode: "USD", Amount: 0, PriceAtPurchase: 1},
		{CurrencyCode: "USD", Amount: -1, PriceAtPurchase: 1},
		{CurrencyCode: "USD", Amount: 1, PriceAtPurchase: 0},
	}
	for _, c := range cases {
		if _, err := s.AddTransaction(ctx, c); err == nil {
			t.Fatalf("expected rejection for %+v", c)
		}
	}
	if len(s.Transactions()) != 0 {
		t.Fatalf("rejected input must not mutate the ledger")
	}
}

func TestAddTransactionAssignsIdentity(t *testing.T) {
	s := NewWalletStore(newFakeKV(), fakePrices{}, nil)
	ctx := context.Background()

	a, err := s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "usd", Amount: 2, PriceAtPurchase: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, _ := s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: 3, PriceAtPurchase: 5})

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected fresh unique ids, got %q %q", a.ID, b.ID)
	}
	if a.CurrencyCode != "USD" {
		t.Fatalf("expected upper-cased code, got %q", a.CurrencyCode)
	}
}

func TestPortfolioValuation(t *testing.T) {
	s := NewWalletStore(newFakeKV(), fakePrices{"USD": 5.50}, nil)
	ctx := context.Background()
	if _, err := s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: 10, PriceAtPurchase: 5.00}); err != nil {
		t.Fatalf("add: %v", err)
	}

	view := s.Portfolio()
	if len(view.Positions) != 1 {
		t.Fatalf("expected one position, got %d", len(view.Positions))
	}
	pos := view.Positions[0]
	if !almostEqual(pos.InvestedValue, 50.00) {
		t.Fatalf("invested = %v", pos.InvestedValue)
	}
	if !almostEqual(pos.CurrentValue, 55.00) {
		t.Fatalf("current = %v", pos.CurrentValue)
	}
	if !almostEqual(pos.Profit, 5.00) {
		t.Fatalf("profit = %v", pos.Profit)
	}
	if !almostEqual(pos.ProfitPercent, 10.0) {
		t.Fatalf("profitPercent = %v", pos.ProfitPercent)
	}
}

func TestPortfolioReflectsLedgerBeforeRefresh(t *testing.T) {
	// no live price at all: invested must still be correct
	s := NewWalletStore(newFakeKV(), fakePrices{}, nil)
	_, _ = s.AddTransaction(context.Background(), models.AddTransactionRequest{CurrencyCode: "USD", Amount: 4, PriceAtPurchase: 2.5})

	view := s.Portfolio()
	if !almostEqual(view.InvestedValue, 10.0) {
		t.Fatalf("invested = %v", view.InvestedValue)
	}
	if !almostEqual(view.CurrentValue, 0) {
		t.Fatalf("missing quote must be valued at 0, got %v", view.CurrentValue)
	}
	if view.Positions[0].HasLivePrice {
		t.Fatalf("expected HasLivePrice=false")
	}
}

func TestPortfolioGroupsByCode(t *testing.T) {
	s := NewWalletStore(newFakeKV(), fakePrices{"USD": 5.0, "EUR": 6.0}, nil)
	ctx := context.Background()
	_, _ = s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: 1, PriceAtPurchase: 4})
	_, _ = s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "EUR", Amount: 2, PriceAtPurchase: 6})
	_, _ = s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: 3, PriceAtPurchase: 5})

	view := s.Portfolio()
	if len(view.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(view.Positions))
	}
	if !almostEqual(view.InvestedValue, 4+12+15) {
		t.Fatalf("invested = %v", view.InvestedValue)
	}
	if !almostEqual(view.CurrentValue, 5+12+15) {
		t.Fatalf("current = %v", view.CurrentValue)
	}
	var weight float64
	for _, p := range view.Positions {
		weight += p.Weight
	}
	if !almostEqual(weight, 100) {
		t.Fatalf("weights must sum to 100, got %v", weight)
	}
}

func TestRemoveTransaction(t *testing.T) {
	s := NewWalletStore(newFakeKV(), fakePrices{}, nil)
	ctx := context.Background()
	tx, _ := s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: 1, PriceAtPurchase: 1})

	s.RemoveTransaction(ctx, "does-not-exist") // no-op
	if len(s.Transactions()) != 1 {
		t.Fatalf("absent id must be a no-op")
	}

	s.RemoveTransaction(ctx, tx.ID)
	if len(s.Transactions()) != 0 {
		t.Fatalf("expected empty ledger")
	}
}

func TestWalletPersistAndLoad(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	s := NewWalletStore(kv, fakePrices{}, nil)
	_, _ = s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: 2, PriceAtPurchase: 5})

	reloaded := NewWalletStore(kv, fakePrices{}, nil)
	reloaded.Load(ctx)
	txs := reloaded.Transactions()
	if len(txs) != 1 || txs[0].CurrencyCode != "USD" || txs[0].Amount != 2 {
		t.Fatalf("unexpected reload %+v", txs)
	}
}

func TestConcurrentAddsPersistFinalState(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()
	s := NewWalletStore(kv, fakePrices{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			_, _ = s.AddTransaction(ctx, models.AddTransactionRequest{CurrencyCode: "USD", Amount: amount, PriceAtPurchase: 5})
		}(float64(i + 1))
	}
	wg.Wait()

	reloaded := NewWalletStore(kv, fakePrices{}, nil)
	reloaded.Load(ctx)

	want := transactionIDs(s.Transactions())
	got := transactionIDs(reloaded.Transactions())
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("durable ledger diverged from memory: %v vs %v", got, want)
	}
}

func transactionIDs(txs []models.Transaction) []string {
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	sort.Strings(ids)
	return ids
}
