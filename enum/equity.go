package enum

import (
	"context"
	"fmt"

	"github.com/lox/pokereval/handrange"
	"github.com/lox/pokereval/internal/randutil"
	"github.com/lox/pokereval/poker"
)

// PlayerEquity is one seat's normalized share of a Calculate result.
type PlayerEquity struct {
	Hand    poker.CardMask
	WinPct  float64
	TiePct  float64
	LosePct float64
	EV      float64

	// Split-pot games only.
	ScoopPct  float64
	WinLoPct  float64
	TieLoPct  float64
	LoseLoPct float64
}

// EquityResult is the display-level summary of an equity query.
type EquityResult struct {
	Samples int64
	Players []PlayerEquity
}

// CalculateOptions configures Calculate.
type CalculateOptions struct {
	Game       Game
	Board      poker.CardMask
	Dead       poker.CardMask
	MonteCarlo bool
	Iterations int64
	Seed       int64
}

// Calculate runs an equity query over specific hands and normalizes
// the aggregate: counters divide by the sample count, and split-pot
// EV halves so a full scoop reports 1.0.
func Calculate(ctx context.Context, hands []poker.CardMask, opts CalculateOptions) (*EquityResult, error) {
	res := NewResult(opts.Game, len(hands))
	nboard := opts.Board.Count()

	var err error
	if opts.MonteCarlo {
		iters := opts.Iterations
		if iters <= 0 {
			iters = 100000
		}
		err = EnumSample(ctx, opts.Game, hands, opts.Board, opts.Dead, nboard, iters, opts.Seed, res)
	} else {
		err = EnumExhaustive(ctx, opts.Game, hands, opts.Board, opts.Dead, nboard, res)
	}
	if err != nil {
		return nil, err
	}

	params := opts.Game.Params()
	out := &EquityResult{Samples: res.NSamples, Players: make([]PlayerEquity, len(hands))}
	samples := float64(res.NSamples)
	if samples == 0 {
		return nil, fmt.Errorf("%w: no rollouts produced", ErrConfig)
	}

	evScale := 1.0
	if params.HasHiPot && params.HasLoPot {
		evScale = 0.5
	}

	for i := range hands {
		p := PlayerEquity{
			Hand:    hands[i],
			WinPct:  float64(res.NWinHi[i]) / samples,
			TiePct:  float64(res.NTieHi[i]) / samples,
			LosePct: float64(res.NLoseHi[i]) / samples,
			EV:      res.EV[i] / samples * evScale,
		}
		if params.HasLoPot {
			p.ScoopPct = float64(res.NScoop[i]) / samples
			p.WinLoPct = float64(res.NWinLo[i]) / samples
			p.TieLoPct = float64(res.NTieLo[i]) / samples
			p.LoseLoPct = float64(res.NLoseLo[i]) / samples
		}
		if !params.HasHiPot {
			// Lowball-only games report their single pot through the
			// hi columns for display purposes.
			p.WinPct = float64(res.NWinLo[i]) / samples
			p.TiePct = float64(res.NTieLo[i]) / samples
			p.LosePct = float64(res.NLoseLo[i]) / samples
		}
		out.Players[i] = p
	}
	return out, nil
}

// RangeEquityResult summarises a range-vs-range Monte-Carlo match.
type RangeEquityResult struct {
	Samples int64
	Wins    int64
	Ties    int64
	Losses  int64
	// Equity is hero's share: (wins + ties/2) / samples.
	Equity float64
}

// RangeEquity estimates hero's equity against an opponent range by
// Monte-Carlo: sample a combo from each range, complete the board by
// rejection, and evaluate. Combos blocked by the board are filtered
// up front; a sampled pair that cannot avoid overlap within ten
// retries is skipped.
func RangeEquity(ctx context.Context, hero, villain *handrange.Range, board poker.CardMask, iterations int64, seed int64) (*RangeEquityResult, error) {
	heroCombos := hero.Filter(board)
	villainCombos := villain.Filter(board)
	if len(heroCombos) == 0 || len(villainCombos) == 0 {
		return nil, fmt.Errorf("%w: a range has no combos left after board filtering", ErrConfig)
	}
	if board.Count() > 5 {
		return nil, fmt.Errorf("%w: board has more than five cards", ErrConfig)
	}

	heroDist := newWeightedSampler(heroCombos)
	villainDist := newWeightedSampler(villainCombos)
	rng := randutil.New(seed)

	out := &RangeEquityResult{}
	for it := int64(0); it < iterations; it++ {
		if it%minChunk == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		h := heroDist.sample(rng.Float64())
		var v poker.CardMask
		ok := false
		for retry := 0; retry < 10; retry++ {
			v = villainDist.sample(rng.Float64())
			if !v.Overlaps(h) {
				ok = true
				break
			}
		}
		if !ok {
			continue
		}

		used := h | v | board
		full := board
		for n := full.Count(); n < 5; n++ {
			for {
				c := poker.CardFromIndex(rng.IntN(poker.NumCards))
				if !used.Has(c) {
					used = used.With(c)
					full = full.With(c)
					break
				}
			}
		}

		hv := poker.Eval(h|full, 7)
		vv := poker.Eval(v|full, 7)
		switch {
		case hv > vv:
			out.Wins++
		case hv < vv:
			out.Losses++
		default:
			out.Ties++
		}
		out.Samples++
	}

	if out.Samples == 0 {
		return nil, fmt.Errorf("%w: every sampled matchup overlapped", ErrConfig)
	}
	out.Equity = (float64(out.Wins) + float64(out.Ties)/2) / float64(out.Samples)
	return out, nil
}

// weightedSampler draws combos from a cumulative weight distribution.
type weightedSampler struct {
	combos []handrange.Combo
	cum    []float64
	total  float64
}

func newWeightedSampler(combos []handrange.Combo) *weightedSampler {
	s := &weightedSampler{combos: combos, cum: make([]float64, len(combos))}
	for i, c := range combos {
		s.total += c.Weight
		s.cum[i] = s.total
	}
	return s
}

func (s *weightedSampler) sample(u float64) poker.CardMask {
	target := u * s.total
	lo, hi := 0, len(s.cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.cum[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return s.combos[lo].Mask
}
