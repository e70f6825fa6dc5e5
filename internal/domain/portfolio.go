package domain

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioEvent is one immutable row of the share ledger. Positive shares
// record a buy, negative shares a sell, price is the per-share price at
// event time. Rows are never updated or deleted; corrections are made by
// inserting offsetting events.
type PortfolioEvent struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Shares    int64     `json:"shares"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// Holding is the net share count for one symbol, derived by summing the
// signed ledger. Only symbols with a positive sum are holdings.
type Holding struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// CostBasis aggregates what a user has spent on one symbol across the whole
// ledger: TotalSpent includes the negative contributions of prior sells.
type CostBasis struct {
	TotalSpent  float64
	TotalShares int64
}

// AverageCost returns the weighted average price paid per currently-held
// share, or 0 when no shares are held (guards the division).
func (c CostBasis) AverageCost() float64 {
	if c.TotalShares <= 0 {
		return 0
	}
	return c.TotalSpent / float64(c.TotalShares)
}

// Position is a valued holding: current price applied to net shares plus
// the derived average cost and unrealized profit/loss.
type Position struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Shares     int64   `json:"shares"`
	Price      float64 `json:"price"`
	Value      float64 `json:"value"`
	AvgCost    float64 `json:"avg_cost"`
	ProfitLoss float64 `json:"profit_loss"`
}

// PortfolioSummary is the full valuation of a user's account: every held
// position at current prices, the cash balance, and net worth.
type PortfolioSummary struct {
	Positions []Position `json:"positions"`
	Cash      float64    `json:"cash"`
	Total     float64    `json:"total"`
}
