package api

import (
	"QuoteVault/internal/domain/models"
	xhttp "QuoteVault/pkg/http"

	"github.com/labstack/echo/v4"
)

// FavoriteView joins a favorite ID with its live indicator if one exists in
// the current snapshot. Favorites survive even when their indicator is gone.
type FavoriteView struct {
	ID        string            `json:"id"`
	Indicator *models.Indicator `json:"indicator,omitempty"`
}

func (h *Handler) ListFavorites(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	byID := make(map[string]models.Indicator)
	for _, ind := range h.indicators.Indicators() {
		byID[ind.ID] = ind
	}

	ids := h.favorites.List()
	views := make([]FavoriteView, 0, len(ids))
	for _, id := range ids {
		view := FavoriteView{ID: id}
		if ind, ok := byID[id]; ok {
			i := ind
			view.Indicator = &i
		}
		views = append(views, view)
	}
	return xhttp.ListResponse(c, views, int64(len(views)))
}

func (h *Handler) ToggleFavorite(c echo.Context) error {
	req := &models.ToggleFavoriteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	favorite := h.favorites.Toggle(c.Request().Context(), req.ID)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"id":       req.ID,
		"favorite": favorite,
	})
}
