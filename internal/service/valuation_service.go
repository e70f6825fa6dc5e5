package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stocksim/internal/domain"
)

// ValuationService derives a user's portfolio from the ledger and the price
// oracle: net shares per symbol at current prices, weighted average cost,
// unrealized profit/loss and net worth.
type ValuationService struct {
	ledgerRepo domain.LedgerRepository
	userRepo   domain.UserRepository
	oracle     domain.PriceOracle
}

// NewValuationService creates a new ValuationService
func NewValuationService(
	ledgerRepo domain.LedgerRepository,
	userRepo domain.UserRepository,
	oracle domain.PriceOracle,
) *ValuationService {
	return &ValuationService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		oracle:     oracle,
	}
}

// Portfolio values every held symbol at its current oracle price. A symbol
// the oracle no longer resolves fails the whole valuation with
// ErrPriceUnavailable rather than silently pricing the position at zero.
func (s *ValuationService) Portfolio(ctx context.Context, userID uuid.UUID) (*domain.PortfolioSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for valuation: %w", err)
	}

	holdings, err := s.ledgerRepo.CurrentHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	summary := &domain.PortfolioSummary{
		Positions: make([]domain.Position, 0, len(holdings)),
		Cash:      user.Cash,
		Total:     user.Cash,
	}

	for _, holding := range holdings {
		quote, err := s.oracle.Lookup(ctx, holding.Symbol)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownSymbol) {
				return nil, fmt.Errorf("%w: %s", domain.ErrPriceUnavailable, holding.Symbol)
			}
			return nil, fmt.Errorf("price lookup for %s: %w", holding.Symbol, err)
		}

		basis, err := s.ledgerRepo.CostBasis(ctx, userID, holding.Symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to load cost basis for %s: %w", holding.Symbol, err)
		}

		avgCost := basis.AverageCost()
		value := quote.Price * float64(holding.Shares)

		summary.Positions = append(summary.Positions, domain.Position{
			Symbol:     holding.Symbol,
			Name:       quote.Name,
			Shares:     holding.Shares,
			Price:      quote.Price,
			Value:      value,
			AvgCost:    avgCost,
			ProfitLoss: value - avgCost*float64(holding.Shares),
		})
		summary.Total += value
	}

	return summary, nil
}
