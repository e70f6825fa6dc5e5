package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
	"stocksim/internal/middleware"
)

// HistoryHandler serves the trade ledger and the full transaction audit log
type HistoryHandler struct {
	ledgerRepo domain.LedgerRepository
	txRepo     domain.TransactionRepository
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(ledgerRepo domain.LedgerRepository, txRepo domain.TransactionRepository) *HistoryHandler {
	return &HistoryHandler{
		ledgerRepo: ledgerRepo,
		txRepo:     txRepo,
	}
}

// GetHistory returns the user's share ledger, newest first
// GET /api/history
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.ledgerRepo.ListEvents(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load history", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// GetTransactions returns the full audit log including cash events
// GET /api/transactions
func (h *HistoryHandler) GetTransactions(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	txs, err := h.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load transactions", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}
