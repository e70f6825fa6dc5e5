package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// LedgerRepositoryImpl implements the LedgerRepository interface
type LedgerRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) domain.LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// CurrentHoldings returns the net share count per symbol, keeping only
// symbols whose signed sum is positive.
func (r *LedgerRepositoryImpl) CurrentHoldings(ctx context.Context, userID uuid.UUID) ([]domain.Holding, error) {
	query := `
		SELECT symbol, SUM(shares) AS shares
		FROM portfolio_events
		WHERE user_id = $1
		GROUP BY symbol
		HAVING SUM(shares) > 0
		ORDER BY symbol ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.Symbol, &h.Shares); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// CostBasis returns total cash spent and total net shares for one symbol.
// Sells contribute negatively to both sums, so the pair yields the weighted
// average cost of what is still held.
func (r *LedgerRepositoryImpl) CostBasis(ctx context.Context, userID uuid.UUID, symbol string) (domain.CostBasis, error) {
	query := `
		SELECT COALESCE(SUM(shares * price), 0) AS total_spent,
		       COALESCE(SUM(shares), 0) AS total_shares
		FROM portfolio_events
		WHERE user_id = $1 AND symbol = $2
	`

	var basis domain.CostBasis
	err := r.db.QueryRow(ctx, query, userID, symbol).Scan(&basis.TotalSpent, &basis.TotalShares)
	if err != nil {
		return domain.CostBasis{}, fmt.Errorf("failed to query cost basis: %w", err)
	}

	return basis, nil
}

// ListEvents returns the user's ledger rows, newest first.
func (r *LedgerRepositoryImpl) ListEvents(ctx context.Context, userID uuid.UUID) ([]*domain.PortfolioEvent, error) {
	query := `
		SELECT id, user_id, symbol, shares, price, created_at
		FROM portfolio_events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger events: %w", err)
	}
	defer rows.Close()

	var events []*domain.PortfolioEvent
	for rows.Next() {
		event := &domain.PortfolioEvent{}
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Symbol,
			&event.Shares,
			&event.Price,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger events: %w", err)
	}

	return events, nil
}
