package models

import "time"

// Transaction is one buy entry in the wallet ledger. Immutable once created
// except for deletion; never updated in place.
type Transaction struct {
	ID              string    `json:"id"`
	CurrencyCode    string    `json:"currencyCode"`
	Amount          float64   `json:"amount"`
	PriceAtPurchase float64   `json:"priceAtPurchase"`
	Date            time.Time `json:"date"`
}

// PortfolioPosition aggregates all ledger entries for one currency code, valued
// against the latest live buy price. A code with no live quote is valued at 0.
type PortfolioPosition struct {
	CurrencyCode  string  `json:"currencyCode"`
	Amount        float64 `json:"amount"`
	InvestedValue float64 `json:"investedValue"`
	CurrentValue  float64 `json:"currentValue"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	Weight        float64 `json:"weight"` // share of total current value, 0-100
	HasLivePrice  bool    `json:"hasLivePrice"`
}

// PortfolioView is the derived valuation of the whole ledger. Never persisted;
// recomputed from the ledger and the live indicator collection on every read.
type PortfolioView struct {
	Positions     []PortfolioPosition `json:"positions"`
	InvestedValue float64             `json:"investedValue"`
	CurrentValue  float64             `json:"currentValue"`
	Profit        float64             `json:"profit"`
	ProfitPercent float64             `json:"profitPercent"`
}
