package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one row of the append-only audit log. It mirrors the share
// ledger for trades and additionally records cash-only events. Symbol and
// Shares are nil for deposits and withdrawals.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Symbol    *string   `json:"symbol,omitempty"`
	Shares    *int64    `json:"shares,omitempty"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction type constants
const (
	TxBuy      = "BUY"
	TxSell     = "SELL"
	TxDeposit  = "DEPOSIT"
	TxWithdraw = "WITHDRAW"
)
