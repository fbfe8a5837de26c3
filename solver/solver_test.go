package solver

import (
	"context"
	"math"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainKuhn(t *testing.T, cfg Config, iterations int) *Solver {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Train(context.Background(), NewKuhn(), iterations, nil))
	return s
}

func kuhnConfig() Config {
	return Config{NumPlayers: 2, CFRPlus: true, LinearPower: 1, Seed: 1}
}

func TestKuhnKingCallsBets(t *testing.T) {
	t.Parallel()
	s := trainKuhn(t, kuhnConfig(), 1000)

	strat := s.AverageStrategy("K:b")
	require.NotNil(t, strat, "the K-facing-bet infoset must exist")
	assert.GreaterOrEqual(t, strat[KuhnBet], 0.9,
		"a king should call a bet almost always")
}

func TestKuhnJackNeverCallsBets(t *testing.T) {
	t.Parallel()
	s := trainKuhn(t, kuhnConfig(), 1000)

	strat := s.AverageStrategy("J:b")
	require.NotNil(t, strat)
	assert.LessOrEqual(t, strat[KuhnBet], 0.1,
		"a jack calling a bet always loses the call")
}

func TestAverageStrategiesSumToOne(t *testing.T) {
	t.Parallel()
	s := trainKuhn(t, kuhnConfig(), 500)

	table := s.StrategyTable()
	require.NotEmpty(t, table)
	for key, strat := range table {
		sum := 0.0
		for _, p := range strat {
			require.GreaterOrEqual(t, p, 0.0, "infoset %s", key)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "infoset %s", key)
	}
}

func TestNashConvDecreases(t *testing.T) {
	t.Parallel()
	root := NewKuhn()

	uniform, err := New(kuhnConfig())
	require.NoError(t, err)
	uniformConv := uniform.NashConv(root)
	require.Greater(t, uniformConv, 0.0)

	s, err := New(kuhnConfig())
	require.NoError(t, err)
	require.NoError(t, s.Train(context.Background(), root, 100, nil))
	conv100 := s.NashConv(root)

	require.NoError(t, s.Train(context.Background(), root, 900, nil))
	conv1000 := s.NashConv(root)

	assert.Less(t, conv100, uniformConv, "training must beat the uniform profile")
	assert.LessOrEqual(t, conv1000, conv100+1e-9, "NashConv must not increase with training")
	assert.Less(t, conv1000, 0.05, "1000 iterations should be close to equilibrium")
}

func TestExternalSamplingConverges(t *testing.T) {
	t.Parallel()
	cfg := kuhnConfig()
	cfg.Sampling = ExternalSampling
	s := trainKuhn(t, cfg, 20000)

	root := NewKuhn()
	uniform, err := New(cfg)
	require.NoError(t, err)

	assert.Less(t, s.NashConv(root), uniform.NashConv(root))

	strat := s.AverageStrategy("K:b")
	require.NotNil(t, strat)
	assert.Greater(t, strat[KuhnBet], 0.8)
}

func TestDCFRTraining(t *testing.T) {
	t.Parallel()
	alpha, beta, gamma := DefaultDCFR()
	cfg := Config{NumPlayers: 2, DCFR: true, Alpha: alpha, Beta: beta, Gamma: gamma, Seed: 3}
	s := trainKuhn(t, cfg, 1000)

	root := NewKuhn()
	uniform, err := New(cfg)
	require.NoError(t, err)
	assert.Less(t, s.NashConv(root), uniform.NashConv(root))
}

func TestECFRStrategyIsSoftmax(t *testing.T) {
	t.Parallel()
	n := newNode(3)
	n.Regrets = []float64{1, 2, 3}
	strat := n.strategy(true)

	// Softmax ratios: e^1 : e^2 : e^3.
	total := math.Exp(1) + math.Exp(2) + math.Exp(3)
	assert.InDelta(t, math.Exp(1)/total, strat[0], 1e-12)
	assert.InDelta(t, math.Exp(3)/total, strat[2], 1e-12)

	// Large regrets stay finite thanks to the max-subtraction.
	n.Regrets = []float64{1000, 999, 0}
	strat = n.strategy(true)
	for _, p := range strat {
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
	}
}

func TestDiscountSchedule(t *testing.T) {
	t.Parallel()
	n := newNode(2)
	n.Regrets = []float64{10, -10}
	n.StrategySum = []float64{4, 4}

	alpha, beta, gamma := DefaultDCFR()
	n.applyDiscount(2, alpha, beta, gamma)

	posWeight := math.Pow(2, alpha) / (math.Pow(2, alpha) + 1)
	negWeight := math.Pow(2, beta) / (math.Pow(2, beta) + 1) // t^0 = 1, so 1/2
	stratWeight := math.Pow(2.0/3.0, gamma)

	assert.InDelta(t, 10*posWeight, n.Regrets[0], 1e-12)
	assert.InDelta(t, -10*negWeight, n.Regrets[1], 1e-12)
	assert.InDelta(t, 4*stratWeight, n.StrategySum[0], 1e-12)
}

func TestRegretMatchingUniformFallback(t *testing.T) {
	t.Parallel()
	n := newNode(4)
	n.Regrets = []float64{-1, -2, 0, -3}
	strat := n.strategy(false)
	for _, p := range strat {
		assert.InDelta(t, 0.25, p, 1e-12)
	}
}

func TestProgressWithMockClock(t *testing.T) {
	t.Parallel()
	s, err := New(kuhnConfig())
	require.NoError(t, err)
	s.WithClock(quartz.NewMock(t))

	var reports []Progress
	err = s.Train(context.Background(), NewKuhn(), 5, func(p Progress) {
		reports = append(reports, p)
	})
	require.NoError(t, err)
	require.Len(t, reports, 5)
	assert.Equal(t, 5, reports[4].Iteration)
	assert.Greater(t, reports[4].Infosets, 0)
}
