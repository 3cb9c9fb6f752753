package actorrt

import (
	"context"
	"errors"
)

// Writer is the sole write handle for a slot. Requesting two Writers for
// the same T from different actors is the ErrDuplicateWriter case
// [validate] rejects at [Build] time.
type Writer[T Storable] struct {
	slot   *Slot[T]
	store  *Store
	actor  string
	ctrl   *turnController
	waiter *Waiter
}

// Write stores value. If this writer already wrote this slot during the
// current round, Write suspends (handing its turn back to the executor)
// until the round advances, then retries. This, not a returned error, is
// how the one-write-per-round invariant is enforced: a pathological actor
// that calls Write in a tight loop without any other await simply blocks
// here until the executor's next RunOnce advances the generation, which
// cannot happen until this actor itself yields — see DESIGN.md.
func (w *Writer[T]) Write(ctx context.Context, value T) error {
	ctx, span := w.store.tracer.StartSpan(ctx, w.actor, "write")
	defer span.End()

	for {
		err := w.slot.Write(value, w.store.gen.Current())
		if err == nil {
			w.waiter.Refresh()
			return nil
		}

		if !errors.Is(err, errWouldOverwriteRound) {
			return err
		}

		if err := w.ctrl.Suspend(ctx); err != nil {
			return err
		}
	}
}
