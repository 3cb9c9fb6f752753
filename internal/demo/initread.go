package demo

import (
	"context"

	"github.com/kernelcore/actorrt"
)

type initReadValue struct {
	actorrt.Base
	V int
}

type otherSlot struct {
	actorrt.Base
	V int
}

type initReaderHandles struct {
	X    actorrt.InitializedReader[initReadValue]
	Idle actorrt.Idle
}

type initWriterHandles struct {
	Write actorrt.Writer[initReadValue]
	Idle  actorrt.Idle
}

type otherWriterHandles struct {
	Write actorrt.Writer[otherSlot]
	Idle  actorrt.Idle
}

// NewInitRead returns the initialized-reader ordering scenario: reader R
// requests an InitializedReader over X, which suspends R's construction
// until X's first write is visible; writer W writes X = 7; actor Z,
// declared after R, writes an unrelated slot so the access validator sees
// a fully-written datastore. R's body runs only once X is present, so its
// first read observes X = 7 — never absent, never missed.
func NewInitRead(obs *Observer) []actorrt.ActorDescriptor {
	actorR := actorrt.Declare(
		obs,
		func(rc *actorrt.RequestContext) initReaderHandles {
			return initReaderHandles{
				X:    actorrt.RequestInitializedReader[initReadValue](rc),
				Idle: actorrt.RequestIdle(rc),
			}
		},
		runInitReader,
	)

	actorW := actorrt.Declare(
		struct{}{},
		func(rc *actorrt.RequestContext) initWriterHandles {
			return initWriterHandles{
				Write: actorrt.RequestWriter[initReadValue](rc),
				Idle:  actorrt.RequestIdle(rc),
			}
		},
		runInitWriter,
	)

	actorZ := actorrt.Declare(
		struct{}{},
		func(rc *actorrt.RequestContext) otherWriterHandles {
			return otherWriterHandles{
				Write: actorrt.RequestWriter[otherSlot](rc),
				Idle:  actorrt.RequestIdle(rc),
			}
		},
		runOtherWriter,
	)

	return []actorrt.ActorDescriptor{actorR, actorW, actorZ}
}

func runInitReader(ctx context.Context, h initReaderHandles, obs *Observer) error {
	var v initReadValue

	h.X.Read(func(value *initReadValue) { v = *value })
	obs.recordInit(v.V)

	return h.Idle.Park(ctx)
}

func runInitWriter(ctx context.Context, h initWriterHandles, _ struct{}) error {
	if err := h.Write.Write(ctx, initReadValue{V: 7}); err != nil {
		return err
	}

	return h.Idle.Park(ctx)
}

func runOtherWriter(ctx context.Context, h otherWriterHandles, _ struct{}) error {
	if err := h.Write.Write(ctx, otherSlot{V: 1}); err != nil {
		return err
	}

	return h.Idle.Park(ctx)
}
