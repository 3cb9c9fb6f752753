package actorrt

import (
	"context"
	"sync"
)

// Waker is the narrow interface a [Waiter] needs to notify interested
// parties that the generation they're watching has moved. [BitWaker]
// (bitmap.go) is the only implementation used by this package; it exists
// as an interface so generation.go has no dependency on the executor.
type Waker interface {
	Wake()
}

// GenerationSource is a store-wide monotonically increasing counter plus a
// set of waiters. Every [Waiter] registered against it holds its own
// snapshot and a [Waker]; [Advance] wakes every waiter whose snapshot is
// stale, leaving up-to-date ones untouched.
//
// Grounded on pkg/slotcache's seqlock generation counter (cache.go
// readGeneration / CAS retry idiom), adapted from a mmap'd odd/even
// in-progress counter to a plain mutex-guarded counter: actorrt has
// exactly one writer per slot, so there is never a concurrent write to
// detect mid-flight, only "has the round advanced".
type GenerationSource struct {
	mu      sync.Mutex
	counter uint64
	waiters map[*Waiter]struct{}
}

// NewGenerationSource returns a GenerationSource at generation 0.
func NewGenerationSource() *GenerationSource {
	return &GenerationSource{waiters: make(map[*Waiter]struct{})}
}

// Current returns the current generation without registering a waiter.
func (g *GenerationSource) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.counter
}

// Advance increments the counter and wakes every waiter whose snapshot is
// now stale.
func (g *GenerationSource) Advance() {
	g.mu.Lock()
	g.counter++
	newGen := g.counter

	stale := make([]*Waiter, 0, len(g.waiters))

	for w := range g.waiters {
		if w.snapshot < newGen {
			stale = append(stale, w)
		}
	}
	g.mu.Unlock()

	for _, w := range stale {
		w.waker.Wake()
	}
}

// Waiter owns a snapshot of the generation it last refreshed at and a
// waker to notify when the source advances past that snapshot.
type Waiter struct {
	source   *GenerationSource
	waker    Waker
	snapshot uint64
}

// NewWaiter registers a new waiter bound to waker, with its snapshot set
// to the current generation.
func (g *GenerationSource) NewWaiter(waker Waker) *Waiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := &Waiter{source: g, waker: waker, snapshot: g.counter}
	g.waiters[w] = struct{}{}

	return w
}

// Snapshot returns the waiter's stored generation.
func (w *Waiter) Snapshot() uint64 {
	w.source.mu.Lock()
	defer w.source.mu.Unlock()

	return w.snapshot
}

// Refresh sets the waiter's snapshot to the source's current generation.
func (w *Waiter) Refresh() {
	w.source.mu.Lock()
	defer w.source.mu.Unlock()
	w.snapshot = w.source.counter
}

// IsStale reports whether the source has advanced past the waiter's
// snapshot.
func (w *Waiter) IsStale() bool {
	w.source.mu.Lock()
	defer w.source.mu.Unlock()

	return w.snapshot < w.source.counter
}

// Close deregisters the waiter. Safe to call multiple times.
func (w *Waiter) Close() {
	w.source.mu.Lock()
	defer w.source.mu.Unlock()
	delete(w.source.waiters, w)
}

// WaitUntil repeatedly calls ready; once it returns true, WaitUntil
// returns nil. Otherwise it calls suspend to hand the actor's turn back to
// the executor and blocks until the next turn, then re-checks ready. The
// loop plays the role a re-polled future plays elsewhere, with suspend
// (backed by the turn-handoff executor, see executor.go) standing in for
// reporting "pending".
func (w *Waiter) WaitUntil(ctx context.Context, ready func() bool, suspend func(context.Context) error) error {
	for !ready() {
		if err := suspend(ctx); err != nil {
			return err
		}
	}

	return nil
}
