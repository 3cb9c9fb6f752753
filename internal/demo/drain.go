package demo

import (
	"context"

	"github.com/kernelcore/actorrt"
)

type drainMsg struct {
	actorrt.Base
	Value int
}

type drainWriterHandles struct {
	Write actorrt.Writer[drainMsg]
	Idle  actorrt.Idle
}

type drainReaderHandles struct {
	Take actorrt.ExclusiveReader[drainMsg]
}

// NewDrain returns the exclusive-reader drain scenario: writer W writes
// values 1, 2, 3 to a slot without ever awaiting a reader, and exclusive
// reader E takes every value in a tight loop. E is declared before W: its
// turn within a round must run ahead of W's so each take happens before
// the writer's next write becomes eligible (the writer's second and third
// writes are rejected until the round advances, since Slot.Write rejects an
// overwrite of a value still present at the same round's generation; in the
// next round E's turn comes first, so it takes each value before W
// overwrites it).
func NewDrain(obs *Observer) []actorrt.ActorDescriptor {
	values := []int{1, 2, 3}

	actorE := actorrt.Declare(
		obs,
		func(rc *actorrt.RequestContext) drainReaderHandles {
			return drainReaderHandles{Take: actorrt.RequestExclusiveReader[drainMsg](rc)}
		},
		runDrainReader,
	)

	actorW := actorrt.Declare(
		values,
		func(rc *actorrt.RequestContext) drainWriterHandles {
			return drainWriterHandles{
				Write: actorrt.RequestWriter[drainMsg](rc),
				Idle:  actorrt.RequestIdle(rc),
			}
		},
		runDrainWriter,
	)

	return []actorrt.ActorDescriptor{actorE, actorW}
}

func runDrainWriter(ctx context.Context, h drainWriterHandles, values []int) error {
	for _, v := range values {
		if err := h.Write.Write(ctx, drainMsg{Value: v}); err != nil {
			return err
		}
	}

	return h.Idle.Park(ctx)
}

func runDrainReader(ctx context.Context, h drainReaderHandles, obs *Observer) error {
	for {
		msg, err := h.Take.TakeUpdated(ctx)
		if err != nil {
			return err
		}

		obs.recordDrained(msg.Value)
	}
}
