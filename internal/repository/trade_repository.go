package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// TradeRepositoryImpl applies trading operations as single Postgres
// transactions. Every operation first locks the user row, which serializes
// all mutations for one user, then re-checks the precondition and writes the
// ledger row, the cash update and the audit row before committing.
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Buy appends a positive ledger event, debits cash and records a BUY
// transaction. Returns ErrInsufficientFunds when cash cannot cover
// shares*price at the time the transaction runs.
func (r *TradeRepositoryImpl) Buy(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price float64) error {
	cost := float64(shares) * price

	return r.withTx(ctx, func(tx pgx.Tx) error {
		cash, err := lockUserCash(ctx, tx, userID)
		if err != nil {
			return err
		}
		if cash < cost {
			return domain.ErrInsufficientFunds
		}

		if err := appendEvent(ctx, tx, userID, symbol, shares, price); err != nil {
			return err
		}
		if err := adjustCash(ctx, tx, userID, -cost); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, userID, domain.TxBuy, &symbol, &shares, cost)
	})
}

// Sell appends a negative ledger event, credits cash at the current price
// and records a SELL transaction. Returns ErrInsufficientShares when the
// signed ledger sum for the symbol is below the requested quantity.
func (r *TradeRepositoryImpl) Sell(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price float64) error {
	proceeds := float64(shares) * price

	return r.withTx(ctx, func(tx pgx.Tx) error {
		// Lock first so the holdings sum cannot change under us.
		if _, err := lockUserCash(ctx, tx, userID); err != nil {
			return err
		}

		var owned int64
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(shares), 0)
			FROM portfolio_events
			WHERE user_id = $1 AND symbol = $2
		`, userID, symbol).Scan(&owned)
		if err != nil {
			return fmt.Errorf("failed to sum owned shares: %w", err)
		}
		if owned < shares {
			return domain.ErrInsufficientShares
		}

		negShares := -shares
		if err := appendEvent(ctx, tx, userID, symbol, negShares, price); err != nil {
			return err
		}
		if err := adjustCash(ctx, tx, userID, proceeds); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, userID, domain.TxSell, &symbol, &negShares, proceeds)
	})
}

// Deposit credits cash and records a DEPOSIT transaction.
func (r *TradeRepositoryImpl) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockUserCash(ctx, tx, userID); err != nil {
			return err
		}
		if err := adjustCash(ctx, tx, userID, amount); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, userID, domain.TxDeposit, nil, nil, amount)
	})
}

// Withdraw debits cash and records a WITHDRAW transaction. Returns
// ErrInsufficientFunds when the amount exceeds the current balance.
func (r *TradeRepositoryImpl) Withdraw(ctx context.Context, userID uuid.UUID, amount float64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		cash, err := lockUserCash(ctx, tx, userID)
		if err != nil {
			return err
		}
		if amount > cash {
			return domain.ErrInsufficientFunds
		}
		if err := adjustCash(ctx, tx, userID, -amount); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, userID, domain.TxWithdraw, nil, nil, amount)
	})
}

// withTx runs fn inside one transaction, rolling back on any error.
func (r *TradeRepositoryImpl) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockUserCash reads the user's cash with FOR UPDATE, serializing all
// trading operations for that user for the rest of the transaction.
func lockUserCash(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (float64, error) {
	var cash float64
	err := tx.QueryRow(ctx, `SELECT cash FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&cash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to lock user row: %w", err)
	}
	return cash, nil
}

func appendEvent(ctx context.Context, tx pgx.Tx, userID uuid.UUID, symbol string, shares int64, price float64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO portfolio_events (user_id, symbol, shares, price, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, userID, symbol, shares, price)
	if err != nil {
		return fmt.Errorf("failed to append ledger event: %w", err)
	}
	return nil
}

func adjustCash(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta float64) error {
	_, err := tx.Exec(ctx, `
		UPDATE users SET cash = cash + $1, updated_at = NOW() WHERE id = $2
	`, delta, userID)
	if err != nil {
		return fmt.Errorf("failed to update cash: %w", err)
	}
	return nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, userID uuid.UUID, txType string, symbol *string, shares *int64, amount float64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO transactions (id, user_id, type, symbol, shares, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, uuid.New(), userID, txType, symbol, shares, amount)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}
