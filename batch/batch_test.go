package batch

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokereval/poker"
)

func randomMasks(seed int64, count int) []poker.CardMask {
	rng := rand.New(rand.NewSource(seed))
	masks := make([]poker.CardMask, count)
	for i := range masks {
		var m poker.CardMask
		for m.Count() < 7 {
			m.Set(rng.Intn(poker.NumCards))
		}
		masks[i] = m
	}
	return masks
}

func TestEvaluateBatchMatchesScalar(t *testing.T) {
	t.Parallel()
	b, err := New(Config{})
	require.NoError(t, err)

	masks := randomMasks(1, 10000)
	got := b.EvaluateBatch(masks)
	require.Len(t, got, len(masks))

	for i, m := range masks {
		if want := poker.Eval(m, 7); got[i] != want {
			t.Fatalf("mask %d (%s): batch %#x != scalar %#x", i, m, got[i], want)
		}
	}
}

func TestEvaluateBatchOddSizes(t *testing.T) {
	t.Parallel()
	b, err := New(Config{Workers: 2})
	require.NoError(t, err)

	for _, n := range []int{0, 1, 7, 8, 9, 63, 100} {
		masks := randomMasks(int64(n)+10, n)
		got := b.EvaluateBatch(masks)
		require.Len(t, got, n)
		for i, m := range masks {
			assert.Equal(t, poker.Eval(m, 7), got[i])
		}
	}
}

func TestResidentDispatchPairing(t *testing.T) {
	t.Parallel()
	b, err := New(Config{})
	require.NoError(t, err)

	masks := randomMasks(3, 2048)
	require.False(t, b.HasPendingResidentResults())
	require.NoError(t, b.DispatchBatchResident(masks))
	require.True(t, b.HasPendingResidentResults())

	// Dispatching while pending is a caller bug and must be flagged.
	err = b.DispatchBatchResident(masks)
	assert.ErrorIs(t, err, ErrPendingResident)

	got, err := b.CollectResidentResults()
	require.NoError(t, err)
	require.False(t, b.HasPendingResidentResults())
	require.Len(t, got, len(masks))
	for i, m := range masks {
		assert.Equal(t, poker.Eval(m, 7), got[i])
	}

	// Collecting again without a dispatch fails.
	_, err = b.CollectResidentResults()
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestResidentBufferGrowsNeverShrinks(t *testing.T) {
	t.Parallel()
	b, err := New(Config{InitialCapacity: 16})
	require.NoError(t, err)

	dispatchCollect := func(n int) {
		require.NoError(t, b.DispatchBatchResident(randomMasks(int64(n), n)))
		out, err := b.CollectResidentResults()
		require.NoError(t, err)
		require.Len(t, out, n)
	}

	dispatchCollect(100)
	grown := cap(b.resident)
	assert.GreaterOrEqual(t, grown, 100)
	assert.Equal(t, grown, nextPow2(100), "growth rounds up to a power of two")

	dispatchCollect(10)
	assert.Equal(t, grown, cap(b.resident), "buffer must not shrink")
}

func TestBadConfig(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Workers: -1})
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestNextPow2(t *testing.T) {
	t.Parallel()
	cases := map[int]int{1: 1, 2: 2, 3: 4, 8: 8, 9: 16, 1000: 1024}
	for in, want := range cases {
		assert.Equal(t, want, nextPow2(in))
	}
}
