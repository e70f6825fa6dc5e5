package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/middleware"
	"stocksim/internal/usecase"
)

// TradeHandler handles buy/sell/deposit/withdraw requests
type TradeHandler struct {
	trading *usecase.TradingService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(trading *usecase.TradingService) *TradeHandler {
	return &TradeHandler{trading: trading}
}

// Buy purchases shares at the current market price
// POST /api/trade/buy
func (h *TradeHandler) Buy(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	shares, ok := parseShares(req.Shares)
	if !ok {
		return BadRequestResponse(c, "Invalid number of shares")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	quote, err := h.trading.Buy(ctx, userID, req.Symbol, shares)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.TradeOutput{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Shares: shares,
		Price:  quote.Price,
		Total:  float64(shares) * quote.Price,
	})
}

// Sell sells shares at the current market price
// POST /api/trade/sell
func (h *TradeHandler) Sell(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	shares, ok := parseShares(req.Shares)
	if !ok {
		return BadRequestResponse(c, "Invalid number of shares")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	quote, err := h.trading.Sell(ctx, userID, req.Symbol, shares)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.TradeOutput{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Shares: shares,
		Price:  quote.Price,
		Total:  float64(shares) * quote.Price,
	})
}

// Deposit credits cash to the account
// POST /api/cash/deposit
func (h *TradeHandler) Deposit(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CashRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid amount")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.trading.Deposit(ctx, userID, amount); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"message": "Deposit completed",
		"amount":  amount,
	})
}

// Withdraw debits cash from the account
// POST /api/cash/withdraw
func (h *TradeHandler) Withdraw(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CashRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid amount")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.trading.Withdraw(ctx, userID, amount); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"message": "Withdrawal completed",
		"amount":  amount,
	})
}

// parseShares accepts only whole positive integers. Fractional or
// non-numeric quantities are invalid input, never rounded.
func parseShares(s string) (int64, bool) {
	shares, err := strconv.ParseInt(s, 10, 64)
	if err != nil || shares <= 0 {
		return 0, false
	}
	return shares, true
}
