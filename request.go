package actorrt

import (
	"context"
	"reflect"
)

// RequestContext is passed to an actor's request closure (see actor.go)
// twice: once in "describing" mode, purely to collect [SlotRequest]s for
// the access validator without touching real storage, and once for real,
// during the actor's first turn, to construct the actual handle tuple.
// Running the same closure twice avoids any reflection over generic struct
// fields: the closure already knows, at compile time, which Request*
// function to call for which T.
//
// Resolution happens inside a granted turn so that a Request* function may
// itself suspend ([RequestInitializedReader] waits for its slot's first
// write before returning). ctx is the actor's run context; err records a
// construction failure, which aborts the actor before its body runs.
type RequestContext struct {
	store      *Store
	waker      *BitWaker
	ctrl       *turnController
	ctx        context.Context
	actor      string
	describing bool
	requests   []SlotRequest
	err        error
}

func (rc *RequestContext) record(kind AccessKind, typ reflect.Type) {
	rc.requests = append(rc.requests, SlotRequest{Type: typ, Kind: kind})
}

// RequestWriter declares and, outside describing mode, resolves the sole
// Writer[T] handle for T. Calling this for the same T from two different
// actors is exactly the ErrDuplicateWriter case the validator rejects.
func RequestWriter[T Storable](rc *RequestContext) Writer[T] {
	rc.record(AccessWriter, reflect.TypeFor[T]())

	if rc.describing {
		return Writer[T]{}
	}

	return Writer[T]{
		slot:   getOrCreateSlot[T](rc.store),
		store:  rc.store,
		actor:  rc.actor,
		ctrl:   rc.ctrl,
		waiter: rc.store.gen.NewWaiter(rc.waker),
	}
}

// RequestReader declares and resolves an ordinary (non-exclusive) reader.
func RequestReader[T Storable](rc *RequestContext) Reader[T] {
	rc.record(AccessReader, reflect.TypeFor[T]())

	if rc.describing {
		return Reader[T]{}
	}

	slot := getOrCreateSlot[T](rc.store)

	return Reader[T]{
		slot:   slot,
		store:  rc.store,
		actor:  rc.actor,
		ctrl:   rc.ctrl,
		waiter: rc.store.gen.NewWaiter(rc.waker),
	}
}

// RequestInitializedReader declares a reader whose read never returns
// absent. Resolving it suspends (handing the actor's turn back to the
// executor, the same loop [Reader.WaitForInit] uses) until the slot's
// first write becomes visible, so by the time the actor's body runs the
// value is guaranteed present. If the runtime is torn down during the
// wait, the construction error is recorded on rc and the actor never
// starts.
func RequestInitializedReader[T Storable](rc *RequestContext) InitializedReader[T] {
	rc.record(AccessInitializedReader, reflect.TypeFor[T]())

	if rc.describing {
		return InitializedReader[T]{}
	}

	reader := Reader[T]{
		slot:   getOrCreateSlot[T](rc.store),
		store:  rc.store,
		actor:  rc.actor,
		ctrl:   rc.ctrl,
		waiter: rc.store.gen.NewWaiter(rc.waker),
	}

	if err := reader.waiter.WaitUntil(rc.ctx, reader.IsUpdated, rc.ctrl.Suspend); err != nil {
		rc.err = err

		return InitializedReader[T]{}
	}

	reader.observe()

	return InitializedReader[T]{reader: reader}
}

// RequestExclusiveReader declares and resolves the sole ExclusiveReader[T]
// handle for T. Requesting this for a T that any actor also requests as an
// ordinary reader is the ErrMixedReaderKind case.
func RequestExclusiveReader[T Storable](rc *RequestContext) ExclusiveReader[T] {
	rc.record(AccessExclusiveReader, reflect.TypeFor[T]())

	if rc.describing {
		return ExclusiveReader[T]{}
	}

	slot := getOrCreateSlot[T](rc.store)

	return ExclusiveReader[T]{
		reader: Reader[T]{
			slot:   slot,
			store:  rc.store,
			actor:  rc.actor,
			ctrl:   rc.ctrl,
			waiter: rc.store.gen.NewWaiter(rc.waker),
		},
	}
}
