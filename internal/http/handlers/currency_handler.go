// README: Currency pass-through handlers (convert, rates, historical, currency list).
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"journeo/internal/modules/currency"
	"journeo/internal/types"
)

type CurrencyProvider interface {
	Rates(ctx context.Context, base string) types.Result[currency.Rates]
	Convert(ctx context.Context, from, to string, amount float64) types.Result[currency.Conversion]
	Historical(ctx context.Context, date, base string) types.Result[currency.Rates]
	Currencies(ctx context.Context) types.Result[map[string]currency.Symbol]
}

type CurrencyHandler struct {
	currency CurrencyProvider
}

func NewCurrencyHandler(svc CurrencyProvider) *CurrencyHandler {
	return &CurrencyHandler{currency: svc}
}

type convertReq struct {
	FromCurrency string   `json:"from_currency"`
	ToCurrency   string   `json:"to_currency"`
	Amount       *float64 `json:"amount"`
}

// Convert handles GET /api/currency/convert.
func (h *CurrencyHandler) Convert(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from_currency"))
	to := strings.TrimSpace(c.Query("to_currency"))
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "missing from_currency or to_currency")
		return
	}
	amount := 1.0
	if v := c.Query("amount"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid amount")
			return
		}
		amount = f
	}
	writeResult(c, h.currency.Convert(c.Request.Context(), from, to, amount))
}

// ConvertJSON handles POST /api/currency/convert.
func (h *CurrencyHandler) ConvertJSON(c *gin.Context) {
	var req convertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if strings.TrimSpace(req.FromCurrency) == "" || strings.TrimSpace(req.ToCurrency) == "" {
		writeError(c, http.StatusBadRequest, "missing from_currency or to_currency")
		return
	}
	amount := 1.0
	if req.Amount != nil {
		amount = *req.Amount
	}
	writeResult(c, h.currency.Convert(c.Request.Context(), req.FromCurrency, req.ToCurrency, amount))
}

// Rates handles GET /api/currency/rates.
func (h *CurrencyHandler) Rates(c *gin.Context) {
	writeResult(c, h.currency.Rates(c.Request.Context(), c.DefaultQuery("base_currency", "USD")))
}

// Historical handles GET /api/currency/historical/:date.
func (h *CurrencyHandler) Historical(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	writeResult(c, h.currency.Historical(c.Request.Context(), date, c.DefaultQuery("base_currency", "USD")))
}

// Currencies handles GET /api/currency/currencies.
func (h *CurrencyHandler) Currencies(c *gin.Context) {
	writeResult(c, h.currency.Currencies(c.Request.Context()))
}
