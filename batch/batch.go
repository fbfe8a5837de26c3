// Package batch provides the batched hand-evaluation back-end: a
// dispatcher that evaluates many masks per call through the wide
// eight-lane kernel, plus a resident dispatch pair for overlapping
// evaluation with other work, mirroring the device-evaluator
// contract (persistent buffers that grow and never shrink, paired
// dispatch/collect calls, early capacity reporting).
package batch

import (
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokereval/poker"
)

// ErrCapacity reports an unavailable or exhausted back-end.
var ErrCapacity = errors.New("capacity error")

// ErrPendingResident reports a resident dispatch issued while a
// previous one has not been collected. Nesting is a caller bug, not
// something the back-end papers over.
var ErrPendingResident = errors.New("resident results pending collection")

// laneWidth is the kernel's batch width.
const laneWidth = 8

// parallelThreshold is the batch size above which lanes fan out
// across workers.
const parallelThreshold = 4096

// Config tunes a Backend.
type Config struct {
	// Workers bounds the parallel lane fan-out; 0 means one worker
	// per CPU.
	Workers int

	// InitialCapacity pre-sizes the result buffer.
	InitialCapacity int
}

// Backend owns the persistent result buffers and the resident
// dispatch state. EvaluateBatch may be called from any goroutine;
// the resident pair must be driven from a single caller.
type Backend struct {
	workers int

	mu       sync.Mutex
	resident []poker.HandVal
	pending  bool
	done     chan struct{}
}

// New constructs a back-end, reporting unusable configurations
// early so callers can fall back to the scalar path.
func New(cfg Config) (*Backend, error) {
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: %d workers", ErrCapacity, cfg.Workers)
	}
	b := &Backend{workers: workers}
	if cfg.InitialCapacity > 0 {
		b.resident = make([]poker.HandVal, 0, nextPow2(cfg.InitialCapacity))
	}
	return b, nil
}

// EvaluateBatch evaluates every mask, returning one packed value per
// input in order. Results equal poker.Eval for every mask.
func (b *Backend) EvaluateBatch(masks []poker.CardMask) []poker.HandVal {
	out := make([]poker.HandVal, len(masks))
	b.evaluateInto(out, masks)
	return out
}

func (b *Backend) evaluateInto(out []poker.HandVal, masks []poker.CardMask) {
	if len(masks) < parallelThreshold || b.workers <= 1 {
		evalRange(out, masks)
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(b.workers)
	chunk := (len(masks)/b.workers + laneWidth) &^ (laneWidth - 1)
	for start := 0; start < len(masks); start += chunk {
		end := min(start+chunk, len(masks))
		g.Go(func() error {
			evalRange(out[start:end], masks[start:end])
			return nil
		})
	}
	g.Wait()
}

func evalRange(out []poker.HandVal, masks []poker.CardMask) {
	i := 0
	for ; i+laneWidth <= len(masks); i += laneWidth {
		var lanes [laneWidth]poker.CardMask
		copy(lanes[:], masks[i:i+laneWidth])
		vals := poker.Eval8(&lanes, 7)
		copy(out[i:i+laneWidth], vals[:])
	}
	for ; i < len(masks); i++ {
		out[i] = poker.Eval(masks[i], masks[i].Count())
	}
}

// DispatchBatchResident starts evaluating the masks in the
// background, keeping the results resident until collected. It must
// be paired with CollectResidentResults; dispatching again before
// collecting fails.
func (b *Backend) DispatchBatchResident(masks []poker.CardMask) error {
	b.mu.Lock()
	if b.pending {
		b.mu.Unlock()
		return ErrPendingResident
	}
	b.pending = true
	b.done = make(chan struct{})
	b.resident = growResident(b.resident, len(masks))
	out := b.resident
	b.mu.Unlock()

	input := make([]poker.CardMask, len(masks))
	copy(input, masks)

	go func() {
		b.evaluateInto(out, input)
		close(b.done)
	}()
	return nil
}

// HasPendingResidentResults reports whether a resident dispatch is
// awaiting collection.
func (b *Backend) HasPendingResidentResults() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// CollectResidentResults blocks until the in-flight resident batch
// completes and returns its results. The returned slice aliases the
// persistent buffer and is valid until the next dispatch.
func (b *Backend) CollectResidentResults() ([]poker.HandVal, error) {
	b.mu.Lock()
	if !b.pending {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: no resident dispatch in flight", ErrCapacity)
	}
	done := b.done
	b.mu.Unlock()

	<-done

	b.mu.Lock()
	b.pending = false
	out := b.resident
	b.mu.Unlock()
	return out, nil
}

// growResident sizes the persistent buffer to hold n results,
// growing to the next power of two and never shrinking.
func growResident(buf []poker.HandVal, n int) []poker.HandVal {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]poker.HandVal, n, nextPow2(n))
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
