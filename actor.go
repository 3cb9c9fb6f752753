package actorrt

import (
	"context"
	"reflect"
)

// RequestFunc builds an actor's handle tuple H by calling the package's
// Request* generic functions against rc. It is called twice: once by
// [Build] with rc.describing set, purely to enumerate [SlotRequest]s for
// the validator, and once for real during the actor's first granted turn
// (see bind). Running the same
// closure twice avoids reflecting over generic struct fields: the closure
// already knows, at compile time, which Request* function to call for
// which T.
type RequestFunc[H any] func(rc *RequestContext) H

// RunFunc is an actor's body. It must never return
// successfully — the only exit is an error, which aborts the runtime.
// Go has no never-returning type to spell that out in the signature, so
// RunFunc returning nil is treated by the executor as an actor-fatal
// condition just like returning a non-nil error (executor.go).
type RunFunc[H any, C any] func(ctx context.Context, handles H, init C) error

// actorDescriptor is the concrete type [Declare] returns.
type actorDescriptor[H any, C any] struct {
	init    C
	request RequestFunc[H]
	run     RunFunc[H, C]
}

// Declare binds a request closure and a run function to an init-context
// value, producing an [ActorDescriptor] ready to pass to [Build].
//
//	type PingPongHandles struct {
//		Write actorrt.Writer[Ping]
//		Read  actorrt.Reader[Pong]
//	}
//
//	actor := actorrt.Declare(
//		initCtx,
//		func(rc *actorrt.RequestContext) PingPongHandles {
//			return PingPongHandles{
//				Write: actorrt.RequestWriter[Ping](rc),
//				Read:  actorrt.RequestReader[Pong](rc),
//			}
//		},
//		runPingPong,
//	)
func Declare[H any, C any](init C, request RequestFunc[H], run RunFunc[H, C]) ActorDescriptor {
	return &actorDescriptor[H, C]{init: init, request: request, run: run}
}

func (a *actorDescriptor[H, C]) name() string {
	var zero H
	return reflect.TypeOf(zero).String()
}

func (a *actorDescriptor[H, C]) describe() []SlotRequest {
	rc := &RequestContext{describing: true}
	a.request(rc)

	return rc.requests
}

// bind defers real handle resolution into the returned runner, which the
// actor's goroutine invokes during its first granted turn. Resolution must
// happen inside a turn, not at [Build] time, because RequestInitializedReader
// suspends until its slot's first write.
func (a *actorDescriptor[H, C]) bind(store *Store, waker *BitWaker, ctrl *turnController) func(context.Context) error {
	return func(ctx context.Context) error {
		rc := &RequestContext{store: store, waker: waker, ctrl: ctrl, ctx: ctx, actor: a.name()}

		handles := a.request(rc)
		if rc.err != nil {
			return rc.err
		}

		return a.run(ctx, handles, a.init)
	}
}
