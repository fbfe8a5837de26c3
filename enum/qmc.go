package enum

import (
	"context"
	"fmt"

	"github.com/lox/pokereval/poker"
)

// EnumQMC runs niter quasi-Monte-Carlo rollouts using a Sobol
// low-discrepancy source in place of the RNG. Each point of the
// k-dimensional unit hypercube maps to a k-of-n card choice over the
// remaining deck. Only board-completion games are supported; the
// sequence is consumed in order, so the run is single-threaded and
// cancelable at chunk boundaries.
func EnumQMC(ctx context.Context, game Game, pockets []poker.CardMask, board, dead poker.CardMask, nboard int, niter int64, res *Result) error {
	if !game.HasBoard() {
		return fmt.Errorf("%w: %s does not support QMC sampling", ErrConfig, game)
	}
	q, err := newQuery(game, pockets, board, dead, nboard, false)
	if err != nil {
		return err
	}

	res.Game = game
	res.NPlayers = len(pockets)
	res.SampleType = QMC

	missing := q.params.MaxBoard - nboard
	if missing == 0 {
		// Nothing left to sample; the single rollout is exact.
		return runRollout(q, res, 0)
	}

	seq := newSobol(missing)
	if seq == nil {
		return fmt.Errorf("%w: %d QMC dimensions unsupported", ErrConfig, missing)
	}

	point := make([]float64, missing)
	remaining := make([]poker.Card, len(q.avail))

	for done := int64(0); done < niter; done += minChunk {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		batch := min(minChunk, niter-done)
		for i := int64(0); i < batch; i++ {
			seq.next(point)

			// Selection sampling: each coordinate indexes into the
			// shrinking remainder, so the k picks are distinct by
			// construction.
			copy(remaining, q.avail)
			rest := remaining
			board := q.board
			for _, u := range point {
				idx := int(u * float64(len(rest)))
				if idx == len(rest) {
					idx--
				}
				board = board.With(rest[idx])
				rest[idx] = rest[len(rest)-1]
				rest = rest[:len(rest)-1]
			}

			if err := rolloutInto(q, res, q.pockets, board); err != nil {
				return err
			}
		}
	}
	return nil
}
