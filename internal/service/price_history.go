package service

import (
	"context"
	"math"
	"math/rand"

	"stocksim/internal/domain"
)

// HistoryDays is the length of the synthetic series served by the chart
// endpoint.
const HistoryDays = 30

// SyntheticHistory generates a random-walk price series anchored at the
// symbol's current quote. The data is demo scaffolding, not historical
// prices, and is labeled as such by the handler that serves it.
type SyntheticHistory struct {
	oracle domain.PriceOracle
}

// NewSyntheticHistory creates a new SyntheticHistory
func NewSyntheticHistory(oracle domain.PriceOracle) *SyntheticHistory {
	return &SyntheticHistory{oracle: oracle}
}

// Series returns HistoryDays points walking ±1 around the current price.
// Fails with ErrUnknownSymbol when the symbol does not resolve.
func (s *SyntheticHistory) Series(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	quote, err := s.oracle.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	points := make([]domain.PricePoint, 0, HistoryDays)
	base := quote.Price
	for day := 1; day <= HistoryDays; day++ {
		base += rand.Float64()*2 - 1
		if base < 0.01 {
			base = 0.01
		}
		points = append(points, domain.PricePoint{
			Day:   day,
			Price: math.Round(base*100) / 100,
		})
	}

	return points, nil
}
