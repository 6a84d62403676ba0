package models

// IndicatorType discriminates the two indicator variants.
type IndicatorType string

const (
	IndicatorCurrency IndicatorType = "currency"
	IndicatorIndex    IndicatorType = "index"
)

// Indicator is a normalized market indicator record. Currencies are keyed by
// "currency_<code>", indexes by "index_<name>"; the ID is immutable once
// assigned and is the join key used by favorites and the wallet.
type Indicator struct {
	ID        string        `json:"id"`
	Type      IndicatorType `json:"type"`
	Code      string        `json:"code,omitempty"`
	Name      string        `json:"name"`
	Buy       float64       `json:"buy"`
	Sell      *float64      `json:"sell"`
	Variation float64       `json:"variation"`
	Points    *float64      `json:"points,omitempty"`
}

// PrimaryValue returns the value that represents the indicator: the buy price
// for currencies, the index level for indexes.
func (i Indicator) PrimaryValue() float64 {
	if i.Type == IndicatorIndex && i.Points != nil {
		return *i.Points
	}
	return i.Buy
}

// HistoricalPoint is one sample of the historical quote series. The upstream
// source emits unix seconds and prices as strings; both are normalized here.
type HistoricalPoint struct {
	Timestamp int64   `json:"timestamp"`
	High      float64 `json:"high"`
}

// Conversion is the result of the stateless conversion endpoint.
type Conversion struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
}

// NewsArticle is a headline from the news collaborator, passed through as-is.
type NewsArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}
