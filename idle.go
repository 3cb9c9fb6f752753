package actorrt

import "context"

// Idle is a handle that lets an actor voluntarily give up its turn with
// nothing in particular to wait for — the Go rendering of an async
// function whose body has run out of slot operations to await but must
// still never return. Requesting one never contributes a [SlotRequest],
// since it touches no slot.
type Idle struct {
	ctrl *turnController
}

// RequestIdle returns an Idle handle bound to the actor's turn controller.
func RequestIdle(rc *RequestContext) Idle {
	if rc.describing {
		return Idle{}
	}

	return Idle{ctrl: rc.ctrl}
}

// Park suspends forever, one round at a time, until ctx is cancelled.
func (i Idle) Park(ctx context.Context) error {
	for {
		if err := i.ctrl.Suspend(ctx); err != nil {
			return err
		}
	}
}
