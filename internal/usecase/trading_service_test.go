package usecase

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim/internal/domain"
)

// memTradeStore mirrors the Postgres trade repository in memory: every
// operation validates and mutates under one lock, so the ledger, cash and
// audit log always move together.
type memTradeStore struct {
	mu     sync.Mutex
	cash   map[uuid.UUID]float64
	ledger []domain.PortfolioEvent
	txs    []domain.Transaction
}

func newMemTradeStore() *memTradeStore {
	return &memTradeStore{cash: make(map[uuid.UUID]float64)}
}

func (m *memTradeStore) owned(userID uuid.UUID, symbol string) int64 {
	var sum int64
	for _, e := range m.ledger {
		if e.UserID == userID && e.Symbol == symbol {
			sum += e.Shares
		}
	}
	return sum
}

func (m *memTradeStore) Buy(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cost := float64(shares) * price
	if m.cash[userID] < cost {
		return domain.ErrInsufficientFunds
	}
	m.ledger = append(m.ledger, domain.PortfolioEvent{UserID: userID, Symbol: symbol, Shares: shares, Price: price})
	m.cash[userID] -= cost
	m.txs = append(m.txs, domain.Transaction{UserID: userID, Type: domain.TxBuy, Symbol: &symbol, Shares: &shares, Amount: cost})
	return nil
}

func (m *memTradeStore) Sell(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owned(userID, symbol) < shares {
		return domain.ErrInsufficientShares
	}
	neg := -shares
	proceeds := float64(shares) * price
	m.ledger = append(m.ledger, domain.PortfolioEvent{UserID: userID, Symbol: symbol, Shares: neg, Price: price})
	m.cash[userID] += proceeds
	m.txs = append(m.txs, domain.Transaction{UserID: userID, Type: domain.TxSell, Symbol: &symbol, Shares: &neg, Amount: proceeds})
	return nil
}

func (m *memTradeStore) Deposit(ctx context.Context, userID uuid.UUID, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cash[userID] += amount
	m.txs = append(m.txs, domain.Transaction{UserID: userID, Type: domain.TxDeposit, Amount: amount})
	return nil
}

func (m *memTradeStore) Withdraw(ctx context.Context, userID uuid.UUID, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount > m.cash[userID] {
		return domain.ErrInsufficientFunds
	}
	m.cash[userID] -= amount
	m.txs = append(m.txs, domain.Transaction{UserID: userID, Type: domain.TxWithdraw, Amount: amount})
	return nil
}

type scriptedOracle map[string]domain.Quote

func (o scriptedOracle) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, ok := o[symbol]
	if !ok {
		return nil, domain.ErrUnknownSymbol
	}
	return &quote, nil
}

func newService(store *memTradeStore, oracle domain.PriceOracle) *TradingService {
	return NewTradingService(store, oracle, time.Second)
}

func TestBuyDebitsCashAndAddsHolding(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	store.cash[userID] = 1000

	oracle := scriptedOracle{"AAPL": {Name: "Apple Inc.", Symbol: "AAPL", Price: 50}}
	svc := newService(store, oracle)

	quote, err := svc.Buy(context.Background(), userID, "AAPL", 10)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)

	assert.InDelta(t, 500, store.cash[userID], 1e-9)
	assert.Equal(t, int64(10), store.owned(userID, "AAPL"))
	require.Len(t, store.txs, 1)
	assert.Equal(t, domain.TxBuy, store.txs[0].Type)
	assert.InDelta(t, 500, store.txs[0].Amount, 1e-9)
}

func TestBuyValidation(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	store.cash[userID] = 1000
	oracle := scriptedOracle{"AAPL": {Symbol: "AAPL", Price: 50}}
	svc := newService(store, oracle)

	tests := []struct {
		name    string
		symbol  string
		shares  int64
		wantErr error
	}{
		{"zero shares", "AAPL", 0, domain.ErrInvalidInput},
		{"negative shares", "AAPL", -5, domain.ErrInvalidInput},
		{"empty symbol", "", 1, domain.ErrInvalidInput},
		{"unknown symbol", "NOPE", 1, domain.ErrUnknownSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Buy(context.Background(), userID, tt.symbol, tt.shares)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// No failed attempt may have touched the store.
	assert.InDelta(t, 1000, store.cash[userID], 1e-9)
	assert.Empty(t, store.ledger)
	assert.Empty(t, store.txs)
}

func TestBuyInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	store.cash[userID] = 100

	oracle := scriptedOracle{"AAPL": {Symbol: "AAPL", Price: 50}}
	svc := newService(store, oracle)

	_, err := svc.Buy(context.Background(), userID, "AAPL", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.InDelta(t, 100, store.cash[userID], 1e-9)
	assert.Empty(t, store.ledger)
}

func TestSellCreditsCashAtCurrentPrice(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	store.cash[userID] = 1000

	oracle := scriptedOracle{"AAPL": {Symbol: "AAPL", Price: 50}}
	svc := newService(store, oracle)

	_, err := svc.Buy(context.Background(), userID, "AAPL", 10)
	require.NoError(t, err)

	// Price moves before the sell: proceeds use the current price.
	oracle["AAPL"] = domain.Quote{Symbol: "AAPL", Price: 60}

	_, err = svc.Sell(context.Background(), userID, "AAPL", 4)
	require.NoError(t, err)

	assert.InDelta(t, 1000-10*50+4*60, store.cash[userID], 1e-9)
	assert.Equal(t, int64(6), store.owned(userID, "AAPL"))
}

func TestSellMoreThanHeldRejected(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	store.cash[userID] = 1000

	oracle := scriptedOracle{"AAPL": {Symbol: "AAPL", Price: 50}}
	svc := newService(store, oracle)

	_, err := svc.Buy(context.Background(), userID, "AAPL", 2)
	require.NoError(t, err)

	cashBefore := store.cash[userID]
	_, err = svc.Sell(context.Background(), userID, "AAPL", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)

	assert.InDelta(t, cashBefore, store.cash[userID], 1e-9)
	assert.Equal(t, int64(2), store.owned(userID, "AAPL"))
}

func TestDepositAndWithdraw(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	svc := newService(store, scriptedOracle{})

	require.NoError(t, svc.Deposit(context.Background(), userID, 250.50))
	assert.InDelta(t, 250.50, store.cash[userID], 1e-9)

	require.NoError(t, svc.Withdraw(context.Background(), userID, 100))
	assert.InDelta(t, 150.50, store.cash[userID], 1e-9)

	assert.ErrorIs(t, svc.Deposit(context.Background(), userID, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Deposit(context.Background(), userID, -5), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Withdraw(context.Background(), userID, -5), domain.ErrInvalidInput)

	// Overdraw leaves cash unchanged.
	err := svc.Withdraw(context.Background(), userID, 1000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.InDelta(t, 150.50, store.cash[userID], 1e-9)
}

func TestCashOperationsRejectNonFiniteAmounts(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	store.cash[userID] = 500
	svc := newService(store, scriptedOracle{})
	ctx := context.Background()

	// ParseFloat accepts "NaN" and "+Inf", so these values can reach the
	// service from the cash endpoints; all of them must be invalid input.
	amounts := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, amount := range amounts {
		assert.ErrorIs(t, svc.Deposit(ctx, userID, amount), domain.ErrInvalidInput)
		assert.ErrorIs(t, svc.Withdraw(ctx, userID, amount), domain.ErrInvalidInput)
	}

	// The balance must still be the finite number it started as.
	assert.False(t, math.IsNaN(store.cash[userID]))
	assert.InDelta(t, 500, store.cash[userID], 1e-9)
	assert.Empty(t, store.txs)

	// And subsequent operations still enforce their invariants.
	assert.ErrorIs(t, svc.Withdraw(ctx, userID, 600), domain.ErrInsufficientFunds)
	require.NoError(t, svc.Withdraw(ctx, userID, 100))
	assert.InDelta(t, 400, store.cash[userID], 1e-9)
}

func TestConcurrentBuySellConsistency(t *testing.T) {
	store := newMemTradeStore()
	userID := uuid.New()
	start := 100000.0
	store.cash[userID] = start

	const price = 10.0
	oracle := scriptedOracle{"AAPL": {Symbol: "AAPL", Price: price}}
	svc := newService(store, oracle)

	const workers = 20
	const rounds = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(buyFirst bool) {
			defer wg.Done()
			ctx := context.Background()
			for r := 0; r < rounds; r++ {
				if buyFirst {
					_, _ = svc.Buy(ctx, userID, "AAPL", 1)
					_, _ = svc.Sell(ctx, userID, "AAPL", 1)
				} else {
					_, _ = svc.Sell(ctx, userID, "AAPL", 1)
					_, _ = svc.Buy(ctx, userID, "AAPL", 1)
				}
			}
		}(i%2 == 0)
	}
	wg.Wait()

	// Cash and holdings must be exactly what the ledger implies: no lost
	// updates, no negative positions.
	var net int64
	var flow float64
	for _, e := range store.ledger {
		net += e.Shares
		flow += float64(e.Shares) * e.Price
	}
	assert.GreaterOrEqual(t, net, int64(0))
	assert.Equal(t, net, store.owned(userID, "AAPL"))
	assert.InDelta(t, start-flow, store.cash[userID], 1e-6)
	assert.GreaterOrEqual(t, store.cash[userID], 0.0)

	// The audit log mirrors the ledger one-to-one for trades.
	assert.Len(t, store.txs, len(store.ledger))
}
