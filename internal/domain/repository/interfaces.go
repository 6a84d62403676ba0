package repository

import (
	"context"

	"QuoteVault/internal/domain/models"
)

// KeyValue is the durable persistence used for the indicator cache entry, the
// favorites set, and the wallet ledger. Each record is a JSON blob under its
// own namespaced key. A missing key is (nil, false, nil), not an error.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// QuoteSource is the remote market-indicator source. FetchAll returns raw
// records as loosely-typed maps; discrimination and numeric normalization
// happen downstream.
type QuoteSource interface {
	FetchAll(ctx context.Context) ([]map[string]interface{}, error)
	FetchHistorical(ctx context.Context, code string, days int) ([]models.HistoricalPoint, error)
	Convert(ctx context.Context, code string, amount float64) (models.Conversion, error)
}

// NewsSource fetches headlines; stateless passthrough, never cached.
type NewsSource interface {
	TopHeadlines(ctx context.Context, country, category string, pageSize int) ([]models.NewsArticle, error)
}

type Metrics interface {
	RecordSync(key, outcome string)
	RecordError(kind string)
	RecordBuyPrice(code string, price float64)
	RecordLatency(op string, seconds float64)
}
