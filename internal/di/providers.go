package di

import (
	"fmt"

	drepo "QuoteVault/internal/domain/repository"
	"QuoteVault/internal/handler/api"
	internalrepo "QuoteVault/internal/repository"
	"QuoteVault/internal/service/awesome"
	"QuoteVault/internal/service/news"
	"QuoteVault/internal/usecase"
	"QuoteVault/pkg/cache"
	"QuoteVault/pkg/config"
	xhttp "QuoteVault/pkg/http"
	"QuoteVault/pkg/logger"
	"QuoteVault/pkg/metrics"
	"QuoteVault/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideKeyValue creates the persistence backend selected in config.
// "file" keeps one JSON file per key, "redis" layers an in-process LRU over
// Redis, "memory" is for tests and ephemeral runs.
func ProvideKeyValue(cfg *config.Config) (drepo.KeyValue, error) {
	switch cfg.Store.Backend {
	case "file":
		store, err := internalrepo.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		return store, nil
	case "redis":
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Store.Redis.Host),
			cache.WithRedisPort(cfg.Store.Redis.Port),
			cache.WithRedisPassword(cfg.Store.Redis.Password),
			cache.WithRedisDB(cfg.Store.Redis.DB),
			cache.WithRedisPrefix(cfg.Store.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return internalrepo.NewCacheStore(cache.NewLayeredCache(redisCache)), nil
	case "memory":
		return internalrepo.NewCacheStore(cache.NewMemoryCache()), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// ProvideQuoteSource creates the remote indicator source client.
func ProvideQuoteSource(cfg *config.Config) drepo.QuoteSource {
	return awesome.New(cfg.Source.BaseURL, cfg.Source.Timeout)
}

// ProvideNewsSource creates the headlines passthrough client.
func ProvideNewsSource(cfg *config.Config) drepo.NewsSource {
	return news.New(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.Timeout)
}

// ProvideIndicatorStore creates the synchronized indicator collection.
func ProvideIndicatorStore(
	source drepo.QuoteSource,
	kv drepo.KeyValue,
	m drepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.IndicatorStore {
	return usecase.NewIndicatorStore(source, kv, m, log, cfg.Source.IndicatorTTL)
}

// ProvideFavoritesStore creates the persisted favorites set.
func ProvideFavoritesStore(kv drepo.KeyValue, log *logger.Logger) *usecase.FavoritesStore {
	return usecase.NewFavoritesStore(kv, log)
}

// ProvideWalletStore creates the transaction ledger priced off the live
// indicator collection.
func ProvideWalletStore(kv drepo.KeyValue, indicators *usecase.IndicatorStore, log *logger.Logger) *usecase.WalletStore {
	return usecase.NewWalletStore(kv, indicators, log)
}

// ProvideHandler creates the HTTP handler with its route table.
func ProvideHandler(
	log *logger.Logger,
	indicators *usecase.IndicatorStore,
	favorites *usecase.FavoritesStore,
	wallet *usecase.WalletStore,
	source drepo.QuoteSource,
	newsSource drepo.NewsSource,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewHandler(log, indicators, favorites, wallet, source, newsSource, api.Options{
		HighlightCodes: cfg.Source.HighlightCodes,
		GlobalCodes:    cfg.Source.GlobalCodes,
		NewsCountry:    cfg.News.Country,
		NewsCategory:   cfg.News.Category,
	})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	kv drepo.KeyValue,
	indicators *usecase.IndicatorStore,
	favorites *usecase.FavoritesStore,
	wallet *usecase.WalletStore,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, log, kv, indicators, favorites, wallet, handler)
}
