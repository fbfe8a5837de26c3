package enum

import (
	"fmt"

	"github.com/lox/pokereval/poker"
)

// evalRollout fills the per-seat hi and lo values for one completed
// deal. Lo values use the LowHandVal ordering (smaller is better);
// 2-7 lowball stores its high-ordered value there unchanged, since
// smaller already means better in that game.
func evalRollout(game Game, pockets []poker.CardMask, board poker.CardMask, hi []poker.HandVal, lo []poker.LowHandVal) error {
	switch game {
	case Holdem:
		for i, p := range pockets {
			hand := p | board
			hi[i] = poker.Eval(hand, hand.Count())
		}
	case Holdem8:
		for i, p := range pockets {
			hand := p | board
			n := hand.Count()
			hi[i] = poker.Eval(hand, n)
			lo[i] = poker.LowEval8(hand, n)
		}
	case ShortDeck:
		for i, p := range pockets {
			hand := p | board
			hi[i] = poker.ShortDeckEval(hand, hand.Count())
		}
	case Omaha, Omaha5, Omaha6:
		for i, p := range pockets {
			v, err := poker.OmahaHiEval(p, board)
			if err != nil {
				return err
			}
			hi[i] = v
		}
	case Omaha8, Omaha85:
		for i, p := range pockets {
			v, lv, err := poker.OmahaHiLow8Eval(p, board)
			if err != nil {
				return err
			}
			hi[i] = v
			lo[i] = lv
		}
	case Stud7:
		for i, p := range pockets {
			hi[i] = poker.Eval(p, p.Count())
		}
	case Stud78, Draw58:
		for i, p := range pockets {
			n := p.Count()
			hi[i] = poker.Eval(p, n)
			lo[i] = poker.LowEval8(p, n)
		}
	case Stud7nsq, Draw5nsq:
		for i, p := range pockets {
			n := p.Count()
			hi[i] = poker.Eval(p, n)
			lo[i] = poker.LowEval(p, n)
		}
	case Razz, Lowball:
		for i, p := range pockets {
			lo[i] = poker.LowEval(p, p.Count())
		}
	case Draw5:
		for i, p := range pockets {
			hi[i] = poker.Eval(p, p.Count())
		}
	case Lowball27:
		for i, p := range pockets {
			lo[i] = poker.LowHandVal(poker.Low27Eval(p, p.Count()))
		}
	default:
		return fmt.Errorf("%w: game %v has no inner loop", ErrConfig, game)
	}
	return nil
}

// addRollout folds one deal's hand values into the counters, exactly
// the way both the exhaustive and sampled paths consume it.
func (r *Result) addRollout(hi []poker.HandVal, lo []poker.LowHandVal) {
	params := r.Game.Params()
	n := r.NPlayers

	var bestHi poker.HandVal
	hiShare := 0
	if params.HasHiPot {
		for i := 0; i < n; i++ {
			if hi[i] > bestHi {
				bestHi = hi[i]
			}
		}
		for i := 0; i < n; i++ {
			if hi[i] == bestHi {
				hiShare++
			}
		}
	}

	bestLo := poker.LowHandValNothing
	loShare := 0
	if params.HasLoPot {
		for i := 0; i < n; i++ {
			if lo[i] < bestLo {
				bestLo = lo[i]
			}
		}
		if bestLo != poker.LowHandValNothing {
			for i := 0; i < n; i++ {
				if lo[i] == bestLo {
					loShare++
				}
			}
		}
	}
	lowExists := loShare > 0

	for i := 0; i < n; i++ {
		var hiFrac, loFrac float64

		if params.HasHiPot {
			if hi[i] == bestHi {
				if hiShare == 1 {
					r.NWinHi[i]++
				} else {
					r.NTieHi[i]++
				}
				if r.NShareHi != nil {
					r.NShareHi[i][hiShare]++
				}
				hiFrac = 1 / float64(hiShare)
			} else {
				r.NLoseHi[i]++
			}
		}

		if params.HasLoPot && lowExists {
			if lo[i] == bestLo {
				if loShare == 1 {
					r.NWinLo[i]++
				} else {
					r.NTieLo[i]++
				}
				if r.NShareLo != nil {
					r.NShareLo[i][loShare]++
				}
				loFrac = 1 / float64(loShare)
			} else {
				r.NLoseLo[i]++
			}
		}

		r.EV[i] += hiFrac + loFrac

		if params.HasHiPot && params.HasLoPot && lowExists &&
			hiShare == 1 && loShare == 1 && hi[i] == bestHi && lo[i] == bestLo {
			r.NScoop[i]++
		}
	}

	r.NSamples++
}
