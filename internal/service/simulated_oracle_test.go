package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim/internal/domain"
)

func TestSimulatedOracleLookup(t *testing.T) {
	oracle := NewSimulatedOracle(1)

	quote, err := oracle.Lookup(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "Apple Inc.", quote.Name)
	assert.Greater(t, quote.Price, 0.0)
}

func TestSimulatedOracleUnknownSymbol(t *testing.T) {
	oracle := NewSimulatedOracle(1)

	_, err := oracle.Lookup(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestSimulatedOracleDeterministicWalk(t *testing.T) {
	a := NewSimulatedOracle(42)
	b := NewSimulatedOracle(42)

	for i := 0; i < 5; i++ {
		a.Drift()
		b.Drift()
	}

	qa, err := a.Lookup(context.Background(), "MSFT")
	require.NoError(t, err)
	qb, err := b.Lookup(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, qa.Price, qb.Price)
}

func TestSimulatedOracleDriftMovesPrices(t *testing.T) {
	oracle := NewSimulatedOracle(7)

	before, err := oracle.Lookup(context.Background(), "TSLA")
	require.NoError(t, err)

	oracle.Drift()

	after, err := oracle.Lookup(context.Background(), "TSLA")
	require.NoError(t, err)

	assert.NotEqual(t, before.Price, after.Price)
	// One tick moves at most 1%
	assert.InDelta(t, before.Price, after.Price, before.Price*0.01+1e-9)
	assert.Greater(t, after.Price, 0.0)
}

func TestSyntheticHistorySeries(t *testing.T) {
	oracle := NewSimulatedOracle(3)
	history := NewSyntheticHistory(oracle)

	points, err := history.Series(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, points, HistoryDays)

	for i, p := range points {
		assert.Equal(t, i+1, p.Day)
		assert.Greater(t, p.Price, 0.0)
	}
}

func TestSyntheticHistoryUnknownSymbol(t *testing.T) {
	history := NewSyntheticHistory(NewSimulatedOracle(3))

	_, err := history.Series(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}
