// Package randutil centralises deterministic RNG seeding so every
// call site gets reproducible sequences from an int64 root seed.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The helper derives the two 64-bit seeds required by rand/v2.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Task returns an independent deterministic stream for a worker task.
// Rerunning with the same root seed and task id yields an identical
// sequence regardless of scheduling.
func Task(seed int64, task int) *rand.Rand {
	u := mix(uint64(seed)) + uint64(task)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
