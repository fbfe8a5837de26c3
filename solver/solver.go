package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	rand "math/rand/v2"

	"github.com/coder/quartz"

	"github.com/lox/pokereval/internal/randutil"
)

// SamplingMode selects how the traversal explores the tree.
type SamplingMode uint8

const (
	// FullTraversal recurses every action and chance outcome.
	FullTraversal SamplingMode = iota
	// ExternalSampling samples one action at opponent decisions and
	// one outcome at chance nodes, updating only the traverser.
	ExternalSampling
)

// Config parameterizes a training run. The zero value plus NumPlayers
// is plain vanilla CFR with linear averaging disabled.
type Config struct {
	NumPlayers int

	// CFRPlus clips regrets at zero after each update.
	CFRPlus bool

	// ECFR derives the policy with a softmax over regrets instead of
	// regret matching.
	ECFR bool

	// DCFR enables the three-parameter discount schedule.
	DCFR  bool
	Alpha float64
	Beta  float64
	Gamma float64

	// LinearPower weights strategy-sum contributions by t^LinearPower;
	// zero disables linear averaging.
	LinearPower float64

	Sampling SamplingMode
	Seed     int64
}

// DefaultDCFR returns the published DCFR parameter defaults.
func DefaultDCFR() (alpha, beta, gamma float64) { return 1.5, 0, 2.0 }

// Progress reports training advancement to an optional callback.
type Progress struct {
	Iteration     int
	Infosets      int
	IterationTime time.Duration
}

// Solver owns the infoset table and runs training iterations. It is
// not safe for concurrent use; parallel schemes must shard by infoset
// or merge per-thread tables between iterations.
type Solver struct {
	cfg       Config
	table     InfosetTable
	iteration int
	clock     quartz.Clock
}

// New constructs a solver for the given configuration.
func New(cfg Config) (*Solver, error) {
	if cfg.NumPlayers < 2 {
		return nil, fmt.Errorf("solver needs at least 2 players, got %d", cfg.NumPlayers)
	}
	if cfg.DCFR && (math.IsNaN(cfg.Alpha) || math.IsNaN(cfg.Beta) || math.IsNaN(cfg.Gamma)) {
		return nil, fmt.Errorf("invalid DCFR parameters")
	}
	return &Solver{cfg: cfg, table: make(InfosetTable), clock: quartz.NewReal()}, nil
}

// WithClock substitutes the wall clock used for progress timing.
func (s *Solver) WithClock(clock quartz.Clock) *Solver {
	s.clock = clock
	return s
}

// Config returns the active configuration.
func (s *Solver) Config() Config { return s.cfg }

// Iteration returns the number of completed iterations.
func (s *Solver) Iteration() int { return s.iteration }

// Infosets returns the number of infosets touched so far.
func (s *Solver) Infosets() int { return len(s.table) }

// Train runs count iterations from the given root. Each iteration
// draws its RNG stream deterministically from the seed and iteration
// number, so a run restored from a checkpoint continues bit-identical
// to an uninterrupted one.
func (s *Solver) Train(ctx context.Context, root State, count int, progress func(Progress)) error {
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := s.clock.Now()
		s.iteration++

		if s.cfg.DCFR {
			t := float64(s.iteration)
			for _, node := range s.table {
				node.applyDiscount(t, s.cfg.Alpha, s.cfg.Beta, s.cfg.Gamma)
			}
		}

		rng := randutil.Task(s.cfg.Seed, s.iteration)
		for player := 0; player < s.cfg.NumPlayers; player++ {
			s.traverse(root, player, 1.0, 1.0, rng)
		}

		if progress != nil {
			progress(Progress{
				Iteration:     s.iteration,
				Infosets:      len(s.table),
				IterationTime: s.clock.Since(start),
			})
		}
	}
	return nil
}

// traverse walks the tree computing counterfactual values for the
// target player. reachPlayer is the target's own reach probability,
// reachOthers the product of everyone else's (chance included).
func (s *Solver) traverse(state State, player int, reachPlayer, reachOthers float64, rng *rand.Rand) float64 {
	switch state.Kind() {
	case Terminal:
		return state.TerminalUtility()[player]

	case Chance:
		outcomes := state.ChanceOutcomes()
		if s.cfg.Sampling == ExternalSampling {
			return s.traverse(sampleOutcome(outcomes, rng), player, reachPlayer, reachOthers, rng)
		}
		value := 0.0
		for _, o := range outcomes {
			value += o.Prob * s.traverse(o.State, player, reachPlayer, reachOthers*o.Prob, rng)
		}
		return value
	}

	actions := state.LegalActions()
	node := s.table.Get(state.InfosetKey(), len(actions))
	strategy := node.strategy(s.cfg.ECFR)

	if state.Player() != player {
		if s.cfg.Sampling == ExternalSampling {
			idx := sampleIndex(strategy, rng)
			return s.traverse(state.Apply(actions[idx]), player, reachPlayer, reachOthers, rng)
		}
		value := 0.0
		for i, a := range actions {
			if strategy[i] <= 0 {
				continue
			}
			value += strategy[i] * s.traverse(state.Apply(a), player, reachPlayer, reachOthers*strategy[i], rng)
		}
		return value
	}

	utils := make([]float64, len(actions))
	nodeValue := 0.0
	for i, a := range actions {
		utils[i] = s.traverse(state.Apply(a), player, reachPlayer*strategy[i], reachOthers, rng)
		nodeValue += strategy[i] * utils[i]
	}

	stratWeight := reachPlayer
	if s.cfg.LinearPower > 0 {
		stratWeight *= math.Pow(float64(s.iteration), s.cfg.LinearPower)
	}
	for i := range actions {
		node.Regrets[i] += reachOthers * (utils[i] - nodeValue)
		if s.cfg.CFRPlus && node.Regrets[i] < 0 {
			node.Regrets[i] = 0
		}
		node.StrategySum[i] += stratWeight * strategy[i]
	}
	return nodeValue
}

// AverageStrategy returns the normalized averaged policy for an
// infoset, or nil when the infoset was never visited.
func (s *Solver) AverageStrategy(key string) []float64 {
	node, ok := s.table[key]
	if !ok {
		return nil
	}
	return node.averageStrategy(s.cfg.ECFR)
}

// StrategyTable snapshots the averaged strategy for every infoset.
func (s *Solver) StrategyTable() map[string][]float64 {
	out := make(map[string][]float64, len(s.table))
	for key, node := range s.table {
		out[key] = node.averageStrategy(s.cfg.ECFR)
	}
	return out
}

func sampleOutcome(outcomes []ChanceOutcome, rng *rand.Rand) State {
	r := rng.Float64()
	acc := 0.0
	for _, o := range outcomes {
		acc += o.Prob
		if r <= acc {
			return o.State
		}
	}
	return outcomes[len(outcomes)-1].State
}

func sampleIndex(strategy []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range strategy {
		acc += p
		if r <= acc {
			return i
		}
	}
	return len(strategy) - 1
}
