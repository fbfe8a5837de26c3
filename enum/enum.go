package enum

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokereval/internal/randutil"
	"github.com/lox/pokereval/poker"
)

// minChunk is the smallest batch of sampled rollouts between
// cancellation checks. Tasks are only cancelable at chunk boundaries.
const minChunk = 128

type query struct {
	game    Game
	params  Params
	pockets []poker.CardMask
	board   poker.CardMask
	dead    poker.CardMask
	avail   []poker.Card
}

// newQuery checks the preconditions in a fixed order — player count,
// board popcount, board size versus the game, exhaustive board
// stages, pairwise disjointness — and resolves the remaining deck.
func newQuery(game Game, pockets []poker.CardMask, board, dead poker.CardMask, nboard int, exhaustive bool) (*query, error) {
	params := game.Params()
	if params.Name == "" {
		return nil, fmt.Errorf("%w: unknown game", ErrConfig)
	}
	if len(pockets) == 0 || len(pockets) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d players (max %d)", ErrConfig, len(pockets), MaxPlayers)
	}
	if board.Count() != nboard {
		return nil, fmt.Errorf("%w: board has %d cards, expected %d", ErrConfig, board.Count(), nboard)
	}
	if nboard > params.MaxBoard {
		return nil, fmt.Errorf("%w: %s allows at most %d board cards", ErrConfig, params.Name, params.MaxBoard)
	}
	if !game.HasBoard() && nboard != 0 {
		return nil, fmt.Errorf("%w: %s has no board", ErrConfig, params.Name)
	}
	if exhaustive && params.MaxBoard == 5 {
		switch nboard {
		case 0, 3, 4, 5:
		default:
			return nil, fmt.Errorf("%w: exhaustive enumeration needs 0, 3, 4, or 5 board cards", ErrConfig)
		}
	}

	var used poker.CardMask
	check := func(m poker.CardMask, what string) error {
		if used.Overlaps(m) {
			return fmt.Errorf("%w: %s shares a card", ErrCardOverlap, what)
		}
		used |= m
		return nil
	}
	for i, p := range pockets {
		n := p.NumCards()
		if n < params.MinPocket || n > params.MaxPocket {
			return nil, fmt.Errorf("%w: pocket %d has %d cards, %s wants %d-%d",
				ErrConfig, i, n, params.Name, params.MinPocket, params.MaxPocket)
		}
		if p&^params.Deck.Cards != 0 {
			return nil, fmt.Errorf("%w: pocket %d uses cards outside the %s deck", ErrConfig, i, params.Deck.Name)
		}
		if err := check(p, fmt.Sprintf("pocket %d", i)); err != nil {
			return nil, err
		}
	}
	if err := check(board, "board"); err != nil {
		return nil, err
	}
	if err := check(dead, "dead set"); err != nil {
		return nil, err
	}

	avail := params.Deck.Remaining(used)
	needed := 0
	if game.HasBoard() {
		needed = params.MaxBoard - nboard
	} else {
		for _, p := range pockets {
			needed += params.TargetHand - p.NumCards()
		}
	}
	if needed > len(avail) {
		return nil, fmt.Errorf("%w: %d cards needed but only %d remain", ErrConfig, needed, len(avail))
	}

	return &query{
		game:    game,
		params:  params,
		pockets: pockets,
		board:   board,
		dead:    dead,
		avail:   avail,
	}, nil
}

// EnumExhaustive enumerates every board completion (or the single
// fully-dealt rollout) and aggregates into res. Supported only for
// board games; stud and draw variants must sample.
func EnumExhaustive(ctx context.Context, game Game, pockets []poker.CardMask, board, dead poker.CardMask, nboard int, res *Result) error {
	if !game.HasBoard() {
		return fmt.Errorf("%w: %s does not support exhaustive enumeration", ErrConfig, game)
	}
	q, err := newQuery(game, pockets, board, dead, nboard, true)
	if err != nil {
		return err
	}

	res.Game = game
	res.NPlayers = len(pockets)
	res.SampleType = Exhaustive

	missing := q.params.MaxBoard - nboard
	if missing == 0 {
		return runRollout(q, res, 0)
	}

	// Fan out over the outermost card index; each worker owns a
	// private accumulator and the merge happens in index order so the
	// aggregate is deterministic.
	workers := len(q.avail) - missing + 1
	partials := make([]*Result, workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			part := res.child()
			first := poker.CardMask(q.avail[w])
			err := forEachCombo(q.avail[w+1:], missing-1, first, func(boardExt poker.CardMask) error {
				return runRollout(q, part, boardExt)
			})
			if err != nil {
				return err
			}
			partials[w] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, part := range partials {
		res.Merge(part)
	}
	return nil
}

// forEachCombo enumerates k-card extensions drawn from cards, OR'd
// onto base, invoking fn for each complete selection.
func forEachCombo(cards []poker.Card, k int, base poker.CardMask, fn func(poker.CardMask) error) error {
	if k == 0 {
		return fn(base)
	}
	for i := 0; i+k <= len(cards); i++ {
		if err := forEachCombo(cards[i+1:], k-1, base|poker.CardMask(cards[i]), fn); err != nil {
			return err
		}
	}
	return nil
}

func runRollout(q *query, res *Result, boardExt poker.CardMask) error {
	return rolloutInto(q, res, q.pockets, q.board|boardExt)
}

func nothingLo() [MaxPlayers]poker.LowHandVal {
	var lo [MaxPlayers]poker.LowHandVal
	for i := range lo {
		lo[i] = poker.LowHandValNothing
	}
	return lo
}

// EnumSample runs niter Monte-Carlo rollouts. Draws use rejection
// from the remaining deck; iterations are partitioned into chunks of
// at least minChunk, each chunk seeded deterministically from the
// root seed plus its task id so reruns reproduce the aggregate.
func EnumSample(ctx context.Context, game Game, pockets []poker.CardMask, board, dead poker.CardMask, nboard int, niter int64, seed int64, res *Result) error {
	q, err := newQuery(game, pockets, board, dead, nboard, false)
	if err != nil {
		return err
	}

	res.Game = game
	res.NPlayers = len(pockets)
	res.SampleType = Sample

	workers := runtime.GOMAXPROCS(0)
	chunk := niter / int64(workers*4)
	if chunk < minChunk {
		chunk = minChunk
	}

	numTasks := int((niter + chunk - 1) / chunk)
	partials := make([]*Result, numTasks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for task := 0; task < numTasks; task++ {
		iters := chunk
		if rem := niter - int64(task)*chunk; rem < chunk {
			iters = rem
		}
		g.Go(func() error {
			part := res.child()
			rng := randutil.Task(seed, task)
			for done := int64(0); done < iters; done += minChunk {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				batch := min(minChunk, iters-done)
				for i := int64(0); i < batch; i++ {
					if err := q.sampleOnce(part, rng); err != nil {
						return err
					}
				}
			}
			partials[task] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, part := range partials {
		res.Merge(part)
	}
	return nil
}
