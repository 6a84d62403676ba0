package models

// AddTransactionRequest is the wallet form input. Rejected synchronously
// before mutating the ledger; never partially applied.
type AddTransactionRequest struct {
	CurrencyCode    string  `json:"currencyCode" validate:"required,len=3,alpha"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PriceAtPurchase float64 `json:"priceAtPurchase" validate:"required,gt=0"`
}

// ToggleFavoriteRequest toggles membership of one indicator ID.
type ToggleFavoriteRequest struct {
	ID string `json:"id" validate:"required"`
}

// HistoricalRequest selects the historical series for one currency code.
type HistoricalRequest struct {
	Code string `param:"code" validate:"required,len=3,alpha"`
	Days int    `query:"days" default:"7" validate:"gte=1,lte=360"`
}

// ConvertRequest converts an amount of a currency to the local reference currency.
type ConvertRequest struct {
	Code   string  `query:"code" validate:"required,len=3,alpha"`
	Amount float64 `query:"amount" validate:"required,gt=0"`
}

// NewsRequest filters the headline passthrough.
type NewsRequest struct {
	Country  string `query:"country"`
	Category string `query:"category"`
	PageSize int    `query:"pageSize" default:"10" validate:"gte=1,lte=100"`
}
