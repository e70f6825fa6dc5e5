package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"stocksim/internal/domain"
)

// TradingService orchestrates buy/sell/deposit/withdraw: it validates
// input, resolves the price through the oracle with a bounded timeout, and
// delegates the mutation to the trade repository, which applies it as one
// all-or-nothing storage transaction.
type TradingService struct {
	tradeRepo     domain.TradeRepository
	oracle        domain.PriceOracle
	lookupTimeout time.Duration
}

// NewTradingService creates a new TradingService
func NewTradingService(
	tradeRepo domain.TradeRepository,
	oracle domain.PriceOracle,
	lookupTimeout time.Duration,
) *TradingService {
	if lookupTimeout <= 0 {
		lookupTimeout = 5 * time.Second
	}
	return &TradingService{
		tradeRepo:     tradeRepo,
		oracle:        oracle,
		lookupTimeout: lookupTimeout,
	}
}

// Buy purchases shares at the current oracle price. Fails with
// ErrInvalidInput for a non-positive quantity or empty symbol,
// ErrUnknownSymbol when the oracle misses, and ErrInsufficientFunds when
// cash cannot cover the cost.
func (s *TradingService) Buy(ctx context.Context, userID uuid.UUID, symbol string, shares int64) (*domain.Quote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", domain.ErrInvalidInput)
	}
	if shares <= 0 {
		return nil, fmt.Errorf("%w: share quantity must be a positive integer", domain.ErrInvalidInput)
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Buy(ctx, userID, quote.Symbol, shares, quote.Price); err != nil {
		return nil, err
	}

	log.Printf("[OK] BUY user=%s %d %s @ %.2f", userID, shares, quote.Symbol, quote.Price)
	return quote, nil
}

// Sell sells shares at the current oracle price, which need not match the
// acquisition price. Fails with ErrInvalidInput, ErrUnknownSymbol or
// ErrInsufficientShares.
func (s *TradingService) Sell(ctx context.Context, userID uuid.UUID, symbol string, shares int64) (*domain.Quote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", domain.ErrInvalidInput)
	}
	if shares <= 0 {
		return nil, fmt.Errorf("%w: share quantity must be a positive integer", domain.ErrInvalidInput)
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Sell(ctx, userID, quote.Symbol, shares, quote.Price); err != nil {
		return nil, err
	}

	log.Printf("[OK] SELL user=%s %d %s @ %.2f", userID, shares, quote.Symbol, quote.Price)
	return quote, nil
}

// Deposit credits cash. Fails with ErrInvalidInput unless the amount is a
// finite positive number.
func (s *TradingService) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	if !validAmount(amount) {
		return fmt.Errorf("%w: amount must be a positive number", domain.ErrInvalidInput)
	}
	return s.tradeRepo.Deposit(ctx, userID, amount)
}

// Withdraw debits cash. Fails with ErrInvalidInput unless the amount is a
// finite positive number, and ErrInsufficientFunds when the amount exceeds
// the balance.
func (s *TradingService) Withdraw(ctx context.Context, userID uuid.UUID, amount float64) error {
	if !validAmount(amount) {
		return fmt.Errorf("%w: amount must be a positive number", domain.ErrInvalidInput)
	}
	return s.tradeRepo.Withdraw(ctx, userID, amount)
}

// validAmount rejects NaN and infinities along with non-positive values.
// ParseFloat accepts "NaN" and "+Inf", and NaN compares false against
// every bound, so a plain amount <= 0 check would let either through and
// poison the stored balance.
func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}

func (s *TradingService) lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	return s.oracle.Lookup(ctx, symbol)
}
