package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
	"stocksim/internal/service"
)

// QuoteHandler serves symbol quotes, the public price endpoint and the
// synthetic chart series
type QuoteHandler struct {
	oracle  domain.PriceOracle
	history *service.SyntheticHistory
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(oracle domain.PriceOracle, history *service.SyntheticHistory) *QuoteHandler {
	return &QuoteHandler{
		oracle:  oracle,
		history: history,
	}
}

// GetQuote returns the full quote for a symbol
// GET /api/quote?symbol=X
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	symbol := strings.TrimSpace(c.QueryParam("symbol"))
	if symbol == "" {
		return BadRequestResponse(c, "Symbol is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	quote, err := h.oracle.Lookup(ctx, symbol)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, quote)
}

// GetPrice is the public price lookup. The response shape is fixed:
// {"price": n} on success, {"error": s} with 400/404/500 per failure kind.
// GET /price?symbol=X
func (h *QuoteHandler) GetPrice(c echo.Context) error {
	symbol := strings.TrimSpace(c.QueryParam("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing symbol"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	quote, err := h.oracle.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSymbol) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no price found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "price lookup failed"})
	}

	if quote.Price <= 0 {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "invalid price"})
	}

	return c.JSON(http.StatusOK, map[string]float64{"price": quote.Price})
}

// GetHistory returns a generated 30-point price series for charting
// GET /api/quote/:symbol/history
func (h *QuoteHandler) GetHistory(c echo.Context) error {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return BadRequestResponse(c, "Symbol is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	points, err := h.history.Series(ctx, symbol)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"symbol":    strings.ToUpper(symbol),
		"synthetic": true, // generated series, not market data
		"points":    points,
	})
}
