package enum

import (
	rand "math/rand/v2"

	"github.com/lox/pokereval/poker"
)

// sampleOnce deals one random rollout and folds it into res. Cards
// are drawn by rejection against the already-dealt set rather than by
// shuffling, since the remaining-deck size varies per query.
func (q *query) sampleOnce(res *Result, rng *rand.Rand) error {
	var drawn poker.CardMask

	drawOne := func() poker.Card {
		for {
			c := q.avail[rng.IntN(len(q.avail))]
			if !drawn.Has(c) {
				drawn = drawn.With(c)
				return c
			}
		}
	}

	if q.game.HasBoard() {
		board := q.board
		for n := board.Count(); n < q.params.MaxBoard; n++ {
			board = board.With(drawOne())
		}
		return rolloutInto(q, res, q.pockets, board)
	}

	// Stud and draw variants deal private cards per seat up to the
	// game's target hand size; no board is shared.
	completed := make([]poker.CardMask, len(q.pockets))
	for i, p := range q.pockets {
		for n := p.NumCards(); n < q.params.TargetHand; n++ {
			p = p.With(drawOne())
		}
		completed[i] = p
	}
	return rolloutInto(q, res, completed, 0)
}

func rolloutInto(q *query, res *Result, pockets []poker.CardMask, board poker.CardMask) error {
	var hi [MaxPlayers]poker.HandVal
	lo := nothingLo()
	if err := evalRollout(q.game, pockets, board, hi[:len(pockets)], lo[:len(pockets)]); err != nil {
		return err
	}
	res.addRollout(hi[:len(pockets)], lo[:len(pockets)])
	return nil
}
