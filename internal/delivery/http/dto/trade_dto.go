package dto

// TradeRequest is the payload for buy and sell. Shares arrives as a string
// so a missing, fractional or non-numeric quantity can be rejected as
// invalid input rather than silently coerced.
type TradeRequest struct {
	Symbol string `json:"symbol" form:"symbol"`
	Shares string `json:"shares" form:"shares"`
}

// CashRequest is the payload for deposit and withdraw.
type CashRequest struct {
	Amount string `json:"amount" form:"amount"`
}

// TradeOutput confirms an executed trade.
type TradeOutput struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Shares int64   `json:"shares"`
	Price  float64 `json:"price"`
	Total  float64 `json:"total"`
}
