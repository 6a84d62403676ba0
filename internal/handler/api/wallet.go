package api

import (
	"QuoteVault/internal/domain/models"
	xhttp "QuoteVault/pkg/http"
	xlogger "QuoteVault/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TransactionView is one ledger entry valued at the live price. A currency
// with no live quote is priced at zero rather than hidden.
type TransactionView struct {
	models.Transaction
	CurrentPrice  float64 `json:"currentPrice"`
	CurrentValue  float64 `json:"currentValue"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	HasLivePrice  bool    `json:"hasLivePrice"`
}

func (h *Handler) ListTransactions(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	txs := h.wallet.Transactions()
	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		price, live := h.indicators.BuyPrice(tx.CurrencyCode)
		if !live {
			price = 0
		}
		invested := tx.Amount * tx.PriceAtPurchase
		current := tx.Amount * price
		view := TransactionView{
			Transaction:  tx,
			CurrentPrice: price,
			CurrentValue: current,
			Profit:       current - invested,
			HasLivePrice: live,
		}
		if invested > 0 {
			view.ProfitPercent = view.Profit / invested * 100
		}
		views = append(views, view)
	}
	return xhttp.ListResponse(c, views, int64(len(views)))
}

func (h *Handler) AddTransaction(c echo.Context) error {
	req := &models.AddTransactionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	tx, err := h.wallet.AddTransaction(c.Request().Context(), *req)
	if err != nil {
		h.log.Warn("transaction rejected", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	return xhttp.CreatedResponse(c, tx)
}

func (h *Handler) RemoveTransaction(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("transaction id is required"))
	}

	h.wallet.RemoveTransaction(c.Request().Context(), id)
	return xhttp.NoContentResponse(c)
}

func (h *Handler) Portfolio(c echo.Context) error {
	if err := h.refresh(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, h.wallet.Portfolio())
}
