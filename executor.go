package actorrt

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// turnResult is sent on a turnController's resultCh to report what
// happened during the turn just granted.
type turnResult struct {
	err       error
	suspended bool
}

// turnController is the per-actor handoff point between the executor
// goroutine and one actor's goroutine. Exactly one of these two
// goroutines is ever running application code at a time: the executor
// blocks on resultCh after sending turnCh, and the actor blocks on turnCh
// after sending resultCh. There is no future object to re-poll; the
// actor's own goroutine stack *is* the suspended continuation, parked on
// a channel receive exactly where it called [turnController.Suspend].
type turnController struct {
	turnCh   chan struct{}
	resultCh chan turnResult
}

func newTurnController() *turnController {
	return &turnController{
		turnCh:   make(chan struct{}),
		resultCh: make(chan turnResult),
	}
}

// Suspend hands the actor's current turn back to the executor and blocks
// until the executor grants the next one (because this actor's wake bit
// was set again) or ctx is cancelled. Every blocking handle operation
// (reader "wait for update", writer "wait for round", the WaitForAny
// combinator) funnels through this single method.
func (t *turnController) Suspend(ctx context.Context) error {
	select {
	case t.resultCh <- turnResult{suspended: true}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.turnCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Executor is the bit-waker cooperative scheduler: it owns N pinned actor
// goroutines (known once [Build] returns) and drives them in declaration
// order, advancing the store's generation once per round.
type Executor struct {
	store       *Store
	bitmap      *wakeBitmap
	controllers []*turnController
	runners     []func(ctx context.Context) error
	names       []string
	wakeSignal  chan struct{}
	started     sync.Once
	empty       bool

	// lifeCtx bounds the actor goroutines, not any one driver call: a
	// driver's ctx expiring stops the round loop but leaves every actor
	// parked and resumable, while cancelling lifeCtx (via Close) is the Go
	// rendering of dropping the store — every actor future is torn down.
	lifeCtx    context.Context
	lifeCancel context.CancelFunc

	// doneErr is recorded the first time a round ends the runtime (an
	// actor returned, or a driver abandoned a round mid-handoff). The
	// runtime never restarts: every later RunOnce reports the same error.
	doneErr error
	done    bool
}

func newExecutor(n int) *Executor {
	lifeCtx, lifeCancel := context.WithCancel(context.Background())

	e := &Executor{
		bitmap:      newWakeBitmap(n),
		controllers: make([]*turnController, n),
		runners:     make([]func(context.Context) error, n),
		names:       make([]string, n),
		wakeSignal:  make(chan struct{}, 1),
		lifeCtx:     lifeCtx,
		lifeCancel:  lifeCancel,
	}
	for i := range n {
		e.controllers[i] = newTurnController()
	}

	return e
}

// Close tears down every actor goroutine, parked or not. Safe to call more
// than once. A closed executor must not be driven again.
func (e *Executor) Close() {
	if e.lifeCancel != nil {
		e.lifeCancel()
	}
}

// Generation returns the store's current generation counter. Exposed so an
// embedder (cmd/actorsh's REPL, tests) can report round progress without
// reaching into unexported fields; it never suspends and has no effect on
// scheduling. A freshly built, never-run executor reports 0.
func (e *Executor) Generation() uint64 {
	if e.empty || e.store == nil {
		return 0
	}

	return e.store.Generation().Current()
}

// WithTracer installs t as the telemetry sink for every span the runtime
// emits: one per actor poll, one per suspending handle operation. Install
// it before the first RunOnce; the default is a no-op.
func (e *Executor) WithTracer(t Tracer) {
	if e.store != nil {
		e.store.WithTracer(t)
	}
}

// waker returns the BitWaker for actor index i, wired to this executor's
// bitmap and outer-driver notification.
func (e *Executor) waker(i int) *BitWaker {
	return &BitWaker{bitmap: e.bitmap, index: i, notify: e.signalWake}
}

func (e *Executor) signalWake() {
	select {
	case e.wakeSignal <- struct{}{}:
	default:
	}
}

// start spawns one goroutine per actor. Each parks immediately on its
// turnCh; the first RunOnce call grants every actor its first turn, since
// the bitmap starts with all bits set. Actors run against
// lifeCtx, so they outlive any single driver ctx and are reaped by Close.
func (e *Executor) start() {
	e.started.Do(func() {
		for i, run := range e.runners {
			ctrl := e.controllers[i]
			run := run

			go func() {
				select {
				case <-ctrl.turnCh:
				case <-e.lifeCtx.Done():
					return
				}

				err := run(e.lifeCtx)

				select {
				case ctrl.resultCh <- turnResult{suspended: false, err: err}:
				case <-e.lifeCtx.Done():
				}
			}()
		}
	})
}

// RunOnce runs one scheduling round: snapshot-and-clear the wake bitmap,
// poll every woken actor once in declaration order, then advance the
// generation source. It returns whether anything was polled.
func (e *Executor) RunOnce(ctx context.Context) (bool, error) {
	if e.empty {
		return false, nil
	}

	if e.done {
		return false, e.doneErr
	}

	e.start()

	indices := e.bitmap.resetAll()
	if len(indices) == 0 {
		return false, nil
	}

	for n, i := range indices {
		ctrl := e.controllers[i]

		_, span := e.store.tracer.StartSpan(ctx, e.names[i], "poll", Attr{Key: "actor_index", Value: i})

		select {
		case ctrl.turnCh <- struct{}{}:
		case <-ctx.Done():
			span.End()
			// The turn was never accepted, so no actor state changed; put
			// the unpolled bits back and let a later driver rerun the round.
			for _, j := range indices[n:] {
				e.bitmap.set(j)
			}

			return true, ctx.Err()
		}

		select {
		case res := <-ctrl.resultCh:
			span.End()

			if !res.suspended {
				if res.err == nil {
					res.err = fmt.Errorf("actorrt: actor %s returned without an error", e.names[i])
				}

				e.done = true
				e.doneErr = fmt.Errorf("actor %s: %w", e.names[i], res.err)

				return true, e.doneErr
			}
		case <-ctx.Done():
			span.End()
			// The actor owns the turn and will hand it back to a receive
			// nobody runs; the round interleaving cannot be reconstructed,
			// so the runtime is finished.
			e.done = true
			e.doneErr = fmt.Errorf("actor %s: %w", e.names[i], ctx.Err())

			return true, e.doneErr
		}
	}

	e.store.gen.Advance()

	return true, nil
}

// Run drives the executor until ctx is cancelled or an actor returns an
// error, which is propagated to the caller. The outer driver is whatever
// goroutine calls Run; yielding to it is runtime.Gosched plus a wait on
// the next wake signal when nothing is ready.
func (e *Executor) Run(ctx context.Context) error {
	if e.empty {
		return nil
	}

	for {
		polled, err := e.RunOnce(ctx)
		if err != nil {
			return err
		}

		if polled && e.bitmap.any() {
			runtime.Gosched()

			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.wakeSignal:
		}
	}
}
