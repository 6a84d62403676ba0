package api

import (
	"time"

	drepo "QuoteVault/internal/domain/repository"
	scache "QuoteVault/internal/service/cache"
	"QuoteVault/internal/service/ratelimit"
	"QuoteVault/internal/usecase"
	xlogger "QuoteVault/pkg/logger"

	"github.com/labstack/echo/v4"
)

// historicalCacheTTL bounds how long a fetched historical series is reused
// before asking the source again.
const historicalCacheTTL = 5 * time.Minute

// Options carries the presentation defaults that are configuration, not state:
// highlight/global code sets and news filter defaults.
type Options struct {
	HighlightCodes []string
	GlobalCodes    []string
	NewsCountry    string
	NewsCategory   string
}

// Handler exposes the dashboard engine over HTTP.
type Handler struct {
	log        *xlogger.Logger
	indicators *usecase.IndicatorStore
	favorites  *usecase.FavoritesStore
	wallet     *usecase.WalletStore
	source     drepo.QuoteSource
	news       drepo.NewsSource
	opts       Options

	histCache *scache.TTLCache
	limiter   *ratelimit.Limiter
}

func NewHandler(
	log *xlogger.Logger,
	indicators *usecase.IndicatorStore,
	favorites *usecase.FavoritesStore,
	wallet *usecase.WalletStore,
	source drepo.QuoteSource,
	news drepo.NewsSource,
	opts Options,
) *Handler {
	return &Handler{
		log:        log,
		indicators: indicators,
		favorites:  favorites,
		wallet:     wallet,
		source:     source,
		news:       news,
		opts:       opts,
		histCache:  scache.NewTTLCache(),
		limiter:    ratelimit.New(),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/indicators", h.ListIndicators)
	g.GET("/indicators/currencies", h.ListCurrencies)
	g.GET("/indicators/indexes", h.ListIndexes)
	g.GET("/indicators/global", h.ListGlobal)
	g.GET("/indicators/highlights", h.ListHighlights)
	g.POST("/indicators/refresh", h.ForceRefresh)
	g.GET("/indicators/historical/:code", h.Historical)
	g.GET("/indicators/convert", h.Convert)

	g.GET("/favorites", h.ListFavorites)
	g.POST("/favorites/toggle", h.ToggleFavorite)

	g.GET("/wallet", h.ListTransactions)
	g.POST("/wallet", h.AddTransaction)
	g.DELETE("/wallet/:id", h.RemoveTransaction)
	g.GET("/wallet/portfolio", h.Portfolio)

	g.GET("/news", h.News)
}
