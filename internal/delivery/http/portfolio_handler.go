package http

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
	"stocksim/internal/middleware"
	"stocksim/internal/service"
)

// PortfolioHandler serves the valued portfolio and the holdings CSV export
type PortfolioHandler struct {
	valuation  *service.ValuationService
	ledgerRepo domain.LedgerRepository
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(valuation *service.ValuationService, ledgerRepo domain.LedgerRepository) *PortfolioHandler {
	return &PortfolioHandler{
		valuation:  valuation,
		ledgerRepo: ledgerRepo,
	}
}

// GetPortfolio returns holdings valued at current prices plus cash and net worth
// GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	summary, err := h.valuation.Portfolio(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, summary)
}

// ExportCSV streams current holdings as `Symbol,Shares` rows in store order.
// Symbols with zero or negative net shares never appear.
// GET /api/portfolio/export.csv
func (h *PortfolioHandler) ExportCSV(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	holdings, err := h.ledgerRepo.CurrentHoldings(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load holdings", err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="portfolio.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{"Symbol", "Shares"}); err != nil {
		return err
	}
	for _, holding := range holdings {
		if err := w.Write([]string{holding.Symbol, strconv.FormatInt(holding.Shares, 10)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
