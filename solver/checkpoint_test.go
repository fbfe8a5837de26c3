package solver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	t.Parallel()
	root := NewKuhn()
	cfg := kuhnConfig()

	// Uninterrupted 2T-iteration run.
	straight, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, straight.Train(context.Background(), root, 200, nil))

	// T iterations, checkpoint, restore, T more.
	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.Train(context.Background(), root, 100, nil))

	path := filepath.Join(t.TempDir(), "solver.pevs")
	require.NoError(t, first.SaveCheckpoint(path))

	resumed, err := LoadCheckpoint(path, cfg.Seed)
	require.NoError(t, err)
	assert.Equal(t, 100, resumed.Iteration())
	assert.Equal(t, cfg.CFRPlus, resumed.Config().CFRPlus)
	assert.Equal(t, cfg.LinearPower, resumed.Config().LinearPower)

	require.NoError(t, resumed.Train(context.Background(), root, 100, nil))

	// The resumed trajectory must be bit-identical to the straight one.
	require.Equal(t, len(straight.table), len(resumed.table))
	for key, want := range straight.table {
		got, ok := resumed.table[key]
		require.True(t, ok, "missing infoset %s", key)
		assert.Equal(t, want.Regrets, got.Regrets, "regrets differ at %s", key)
		assert.Equal(t, want.StrategySum, got.StrategySum, "strategy sums differ at %s", key)
	}
}

func TestCheckpointDeterministicBytes(t *testing.T) {
	t.Parallel()
	s := trainKuhn(t, kuhnConfig(), 50)

	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.pevs")
	p2 := filepath.Join(dir, "b.pevs")
	require.NoError(t, s.SaveCheckpoint(p1))
	require.NoError(t, s.SaveCheckpoint(p2))

	b1 := readFile(t, p1)
	b2 := readFile(t, p2)
	assert.Equal(t, b1, b2, "same state must serialize to identical blobs")
	assert.Equal(t, "PEVS", string(b1[:4]))
}

func TestCheckpointRejectsGarbage(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.pevs")
	writeFile(t, path, []byte("not a checkpoint"))

	_, err := LoadCheckpoint(path, 0)
	assert.Error(t, err)
}

func TestCheckpointPreservesFlags(t *testing.T) {
	t.Parallel()
	alpha, beta, gamma := DefaultDCFR()
	cfg := Config{
		NumPlayers: 2, ECFR: true, DCFR: true,
		Alpha: alpha, Beta: beta, Gamma: gamma,
		LinearPower: 2, Sampling: ExternalSampling, Seed: 9,
	}
	s := trainKuhn(t, cfg, 10)

	path := filepath.Join(t.TempDir(), "flags.pevs")
	require.NoError(t, s.SaveCheckpoint(path))

	restored, err := LoadCheckpoint(path, cfg.Seed)
	require.NoError(t, err)

	got := restored.Config()
	assert.True(t, got.ECFR)
	assert.True(t, got.DCFR)
	assert.Equal(t, ExternalSampling, got.Sampling)
	assert.Equal(t, alpha, got.Alpha)
	assert.Equal(t, gamma, got.Gamma)
	assert.Equal(t, 2.0, got.LinearPower)
}
