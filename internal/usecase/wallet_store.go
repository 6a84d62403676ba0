package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"QuoteVault/internal/domain/models"
	drepo "QuoteVault/internal/domain/repository"
	"QuoteVault/pkg/logger"
	"QuoteVault/pkg/util"

	"github.com/google/uuid"
)

const walletKey = "wallet:transactions"

// PriceSource resolves the live buy price for a currency code. Implemented by
// the indicator store; the wallet never mutates indicator state.
type PriceSource interface {
	BuyPrice(code string) (float64, bool)
}

// WalletStore owns the append-only ledger of buy transactions. Valuation is
// derived on every read by joining the ledger against live prices; it is
// never persisted.
type WalletStore struct {
	mu  sync.RWMutex
	txs []models.Transaction

	// serializes durable writes so overlapping mutations cannot persist an
	// older snapshot over a newer one
	persistMu sync.Mutex

	prices PriceSource
	kv     drepo.KeyValue
	log    *logger.Logger
	now    func() time.Time
}

func NewWalletStore(kv drepo.KeyValue, prices PriceSource, log *logger.Logger) *WalletStore {
	return &WalletStore{
		prices: prices,
		kv:     kv,
		log:    log,
		now:    time.Now,
	}
}

// Load reads the persisted ledger. Missing or corrupt records start empty;
// entries failing basic validation are skipped.
func (s *WalletStore) Load(ctx context.Context) {
	b, ok, err := s.kv.Get(ctx, walletKey)
	if err != nil || !ok {
		return
	}
	var txs []models.Transaction
	if err := json.Unmarshal(b, &txs); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = s.txs[:0]
	for _, tx := range txs {
		if tx.ID == "" || tx.Amount <= 0 || tx.PriceAtPurchase <= 0 {
			continue
		}
		s.txs = append(s.txs, tx)
	}
}

// AddTransaction validates the input, assigns a fresh ID, and appends to the
// ledger. Invalid input is rejected before any mutation.
func (s *WalletStore) AddTransaction(ctx context.Context, req models.AddTransactionRequest) (models.Transaction, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if !util.IsCurrencyCode(code) {
		return models.Transaction{}, fmt.Errorf("currency code must be 3 letters, got %q", req.CurrencyCode)
	}
	if req.Amount <= 0 {
		return models.Transaction{}, fmt.Errorf("amount must be positive, got %v", req.Amount)
	}
	if req.PriceAtPurchase <= 0 {
		return models.Transaction{}, fmt.Errorf("price must be positive, got %v", req.PriceAtPurchase)
	}

	tx := models.Transaction{
		ID:              uuid.NewString(),
		CurrencyCode:    code,
		Amount:          req.Amount,
		PriceAtPurchase: req.PriceAtPurchase,
		Date:            s.now().UTC(),
	}

	s.mu.Lock()
	s.txs = append(s.txs, tx)
	s.mu.Unlock()

	s.persist(ctx)
	return tx, nil
}

// RemoveTransaction deletes by identity; an absent ID is a no-op.
func (s *WalletStore) RemoveTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	removed := false
	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.persist(ctx)
	}
}

// Transactions returns a copy of the ledger in insertion order.
func (s *WalletStore) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Portfolio computes the valuation view: one position per distinct currency
// code, joined against live prices. A code with no live quote is valued with
// price 0 so a single missing quote never blanks the whole view.
func (s *WalletStore) Portfolio() models.PortfolioView {
	s.mu.RLock()
	txs := make([]models.Transaction, len(s.txs))
	copy(txs, s.txs)
	s.mu.RUnlock()

	byCode := make(map[string]*models.PortfolioPosition)
	order := make([]string, 0)
	for _, tx := range txs {
		pos, ok := byCode[tx.CurrencyCode]
		if !ok {
			_, live := s.prices.BuyPrice(tx.CurrencyCode)
			pos = &models.PortfolioPosition{CurrencyCode: tx.CurrencyCode, HasLivePrice: live}
			byCode[tx.CurrencyCode] = pos
			order = append(order, tx.CurrencyCode)
		}
		pos.Amount += tx.Amount
		pos.InvestedValue += tx.Amount * tx.PriceAtPurchase
	}

	view := models.PortfolioView{Positions: make([]models.PortfolioPosition, 0, len(order))}
	sort.Strings(order)
	for _, code := range order {
		pos := byCode[code]
		price, _ := s.prices.BuyPrice(code)
		pos.CurrentValue = pos.Amount * price
		pos.Profit = pos.CurrentValue - pos.InvestedValue
		if pos.InvestedValue != 0 {
			pos.ProfitPercent = pos.Profit / pos.InvestedValue * 100
		}
		view.InvestedValue += pos.InvestedValue
		view.CurrentValue += pos.CurrentValue
		view.Positions = append(view.Positions, *pos)
	}

	view.Profit = view.CurrentValue - view.InvestedValue
	if view.InvestedValue != 0 {
		view.ProfitPercent = view.Profit / view.InvestedValue * 100
	}
	for i := range view.Positions {
		if view.CurrentValue != 0 {
			view.Positions[i].Weight = view.Positions[i].CurrentValue / view.CurrentValue * 100
		}
	}
	return view
}

// persist writes the current ledger. The snapshot is taken under the persist
// lock, so the write that lands last always carries the newest state.
func (s *WalletStore) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	txs := s.Transactions()
	b, err := json.Marshal(txs)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, walletKey, b); err != nil && s.log != nil {
		s.log.Warn("wallet persist failed", logger.Error(err))
	}
}
