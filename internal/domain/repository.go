package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdatePasswordHash replaces the stored password hash
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// LedgerRepository reads the append-only share ledger. Writes happen only
// through TradeRepository so they stay atomic with the cash update and the
// audit row.
type LedgerRepository interface {
	// CurrentHoldings returns, per symbol with a positive net share sum,
	// the summed signed shares for the user.
	CurrentHoldings(ctx context.Context, userID uuid.UUID) ([]Holding, error)

	// CostBasis returns total cash spent (sells contribute negatively) and
	// total net shares for one symbol.
	CostBasis(ctx context.Context, userID uuid.UUID, symbol string) (CostBasis, error)

	// ListEvents returns the user's ledger rows, newest first.
	ListEvents(ctx context.Context, userID uuid.UUID) ([]*PortfolioEvent, error)
}

// TransactionRepository reads the append-only audit log.
type TransactionRepository interface {
	// ListByUser returns the user's transactions, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
}

// TradeRepository applies trading operations as single all-or-nothing
// storage transactions. Each call re-validates cash and holdings inside the
// transaction and either commits ledger row + cash update + audit row
// together or leaves the store untouched, returning ErrInsufficientFunds or
// ErrInsufficientShares when a precondition fails.
type TradeRepository interface {
	Buy(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price float64) error
	Sell(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price float64) error
	Deposit(ctx context.Context, userID uuid.UUID, amount float64) error
	Withdraw(ctx context.Context, userID uuid.UUID, amount float64) error
}
