package api

import (
	"fmt"
	"net/http"
	"strings"

	"QuoteVault/internal/domain/models"
	"QuoteVault/internal/usecase"
	xhttp "QuoteVault/pkg/http"
	xlogger "QuoteVault/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IndicatorsResponse wraps a derived view together with the store's refresh
// state, so clients can render stale data with an error banner.
type IndicatorsResponse struct {
	State      usecase.StoreState `json:"state"`
	Error      string             `json:"error,omitempty"`
	Indicators []models.Indicator `json:"indicators"`
}

// refresh runs a sync cycle and maps the blocking no-data case to an upstream
// error. Stale fallback is non-fatal and only sets the response error field.
func (h *Handler) refresh(c echo.Context) error {
	if err := h.indicators.Refresh(c.Request().Context()); err != nil {
		h.log.Error("indicator refresh failed with no fallback", xlogger.Error(err))
		return xhttp.NewAppError("ERR_UPSTREAM_UNAVAILABLE", "", "indicator source unavailable and no cached data exists", http.StatusBadGateway).WithError(err)
	}
	return nil
}

func (h *Handler) respondView(c echo.Context, indicators []models.Indicator) error {
	resp := IndicatorsResponse{
		State:      h.indicators.State(),
		Indicators: indicators,
	}
	if err := h.indicators.Err(); err != nil {
		resp.Error = err.Error()
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *Handler) ListIndicators(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondView(c, h.indicators.Indicators())
}

func (h *Handler) ListCurrencies(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondView(c, h.indicators.Currencies())
}

func (h *Handler) ListIndexes(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	if filter := c.QueryParam("filter"); filter != "" {
		return h.respondView(c, h.indicators.IndexesMatching(strings.Split(filter, ",")))
	}
	return h.respondView(c, h.indicators.Indexes())
}

func (h *Handler) ListGlobal(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondView(c, h.indicators.ByCodes(h.opts.GlobalCodes))
}

func (h *Handler) ListHighlights(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondView(c, h.indicators.ByCodes(h.opts.HighlightCodes))
}

// ForceRefresh drops the persisted entry first, so the cycle must hit the
// network. This is the pull-to-refresh path, so it is token-bucket limited.
func (h *Handler) ForceRefresh(c echo.Context) error {
	if !h.limiter.Allow("refresh", 2, 1.0/15) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "refresh requested too frequently", http.StatusTooManyRequests))
	}

	ctx := c.Request().Context()
	if err := h.indicators.Invalidate(ctx); err != nil {
		h.log.Warn("cache invalidate failed", xlogger.Error(err))
	}
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondView(c, h.indicators.Indicators())
}

func (h *Handler) Historical(c echo.Context) error {
	req := &models.HistoricalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	code := strings.ToUpper(req.Code)
	cacheKey := fmt.Sprintf("historical:%s:%d", code, req.Days)
	if v, ok := h.histCache.Get(cacheKey); ok {
		points := v.([]models.HistoricalPoint)
		return xhttp.ListResponse(c, points, int64(len(points)))
	}

	points, err := h.source.FetchHistorical(c.Request().Context(), code, req.Days)
	if err != nil {
		h.log.Error("historical fetch failed", xlogger.String("code", code), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_UPSTREAM_UNAVAILABLE", "", "historical source unavailable", http.StatusBadGateway).WithError(err))
	}
	h.histCache.Set(cacheKey, points, historicalCacheTTL)
	return xhttp.ListResponse(c, points, int64(len(points)))
}

func (h *Handler) Convert(c echo.Context) error {
	req := &models.ConvertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conv, err := h.source.Convert(c.Request().Context(), strings.ToUpper(req.Code), req.Amount)
	if err != nil {
		h.log.Error("conversion failed", xlogger.String("code", req.Code), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_UPSTREAM_UNAVAILABLE", "", "conversion source unavailable", http.StatusBadGateway).WithError(err))
	}
	return xhttp.SuccessResponse(c, conv)
}

func (h *Handler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Country == "" {
		req.Country = h.opts.NewsCountry
	}
	if req.Category == "" {
		req.Category = h.opts.NewsCategory
	}

	articles, err := h.news.TopHeadlines(c.Request().Context(), req.Country, req.Category, req.PageSize)
	if err != nil {
		h.log.Error("headlines fetch failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_UPSTREAM_UNAVAILABLE", "", "news source unavailable", http.StatusBadGateway).WithError(err))
	}
	return xhttp.ListResponse(c, articles, int64(len(articles)))
}
