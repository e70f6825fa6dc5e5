package domain

import "context"

// Quote is the oracle's answer for one ticker.
type Quote struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// PriceOracle resolves a ticker symbol to its current quote. Lookup returns
// ErrUnknownSymbol when the symbol does not resolve and ErrOracleUnavailable
// when the backing service cannot be reached in time; it never blocks past
// the deadline on ctx.
type PriceOracle interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// PricePoint is one sample of a synthetic price series used by the chart
// endpoint. The series is generated, not historical data.
type PricePoint struct {
	Day   int     `json:"day"`
	Price float64 `json:"price"`
}
