package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"stocksim/internal/domain"
)

// SimulatedOracle is an in-process price oracle over a fixed symbol
// universe. Prices start from a per-symbol base and move by a small random
// walk each Drift tick. It exists for development and demos; quotes carry no
// market meaning.
type SimulatedOracle struct {
	mu     sync.RWMutex
	rng    *rand.Rand
	prices map[string]float64
	names  map[string]string
}

// Starter universe with rough base prices. Symbols outside this table do
// not resolve, which exercises the unknown-symbol path end to end.
var simulatedUniverse = map[string]struct {
	Name  string
	Price float64
}{
	"AAPL": {"Apple Inc.", 190.00},
	"MSFT": {"Microsoft Corporation", 420.00},
	"GOOG": {"Alphabet Inc.", 165.00},
	"AMZN": {"Amazon.com Inc.", 180.00},
	"TSLA": {"Tesla Inc.", 250.00},
	"META": {"Meta Platforms Inc.", 480.00},
	"NVDA": {"NVIDIA Corporation", 120.00},
	"NFLX": {"Netflix Inc.", 650.00},
	"IBM":  {"International Business Machines", 170.00},
	"INTC": {"Intel Corporation", 32.00},
}

// NewSimulatedOracle creates a simulated oracle. A non-zero seed makes the
// walk reproducible; seed 0 uses the clock.
func NewSimulatedOracle(seed int64) *SimulatedOracle {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	prices := make(map[string]float64, len(simulatedUniverse))
	names := make(map[string]string, len(simulatedUniverse))
	for symbol, entry := range simulatedUniverse {
		prices[symbol] = entry.Price
		names[symbol] = entry.Name
	}

	return &SimulatedOracle{
		rng:    rand.New(rand.NewSource(seed)),
		prices: prices,
		names:  names,
	}
}

// Lookup resolves a symbol against the simulated universe.
func (o *SimulatedOracle) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	o.mu.RLock()
	defer o.mu.RUnlock()

	price, ok := o.prices[symbol]
	if !ok {
		return nil, domain.ErrUnknownSymbol
	}

	return &domain.Quote{
		Name:   o.names[symbol],
		Symbol: symbol,
		Price:  price,
	}, nil
}

// Drift moves every price by up to ±1%, floored at one cent. Called from
// the cron scheduler.
func (o *SimulatedOracle) Drift() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for symbol, price := range o.prices {
		change := (o.rng.Float64()*2 - 1) * 0.01 * price
		next := price + change
		if next < 0.01 {
			next = 0.01
		}
		o.prices[symbol] = next
	}
}
