package demo

import (
	"context"

	"github.com/kernelcore/actorrt"
)

type anyUpdateX struct {
	actorrt.Base
	V int
}

type anyUpdateY struct {
	actorrt.Base
	V int
}

type anyUpdateReaderHandles struct {
	X    actorrt.Reader[anyUpdateX]
	Y    actorrt.Reader[anyUpdateY]
	Idle actorrt.Idle
}

type anyUpdateWriterXHandles struct {
	Write actorrt.Writer[anyUpdateX]
	Idle  actorrt.Idle
}

type anyUpdateWriterYHandles struct {
	Write actorrt.Writer[anyUpdateY]
	Idle  actorrt.Idle
}

// NewAnyUpdate returns the multi-slot "any update" scenario: reader R
// waits on the union of X and Y via WaitForAny, writer WX writes X=42,
// writer WY never writes. R is expected to wake exactly once, observing
// X present and Y absent.
func NewAnyUpdate(obs *Observer) []actorrt.ActorDescriptor {
	actorR := actorrt.Declare(
		obs,
		func(rc *actorrt.RequestContext) anyUpdateReaderHandles {
			return anyUpdateReaderHandles{
				X:    actorrt.RequestReader[anyUpdateX](rc),
				Y:    actorrt.RequestReader[anyUpdateY](rc),
				Idle: actorrt.RequestIdle(rc),
			}
		},
		runAnyUpdateReader,
	)

	actorWX := actorrt.Declare(
		struct{}{},
		func(rc *actorrt.RequestContext) anyUpdateWriterXHandles {
			return anyUpdateWriterXHandles{
				Write: actorrt.RequestWriter[anyUpdateX](rc),
				Idle:  actorrt.RequestIdle(rc),
			}
		},
		runAnyUpdateWriterX,
	)

	actorWY := actorrt.Declare(
		struct{}{},
		func(rc *actorrt.RequestContext) anyUpdateWriterYHandles {
			return anyUpdateWriterYHandles{
				Write: actorrt.RequestWriter[anyUpdateY](rc),
				Idle:  actorrt.RequestIdle(rc),
			}
		},
		runAnyUpdateWriterY,
	)

	return []actorrt.ActorDescriptor{actorR, actorWX, actorWY}
}

func runAnyUpdateReader(ctx context.Context, h anyUpdateReaderHandles, obs *Observer) error {
	for {
		idx, err := actorrt.WaitForAny(ctx, &h.X, &h.Y)
		if err != nil {
			return err
		}

		var x anyUpdateX

		h.X.Read(func(v *anyUpdateX, present bool) {
			if present {
				x = *v
			}
		})

		var y anyUpdateY

		yPresent := false

		h.Y.Read(func(v *anyUpdateY, present bool) {
			yPresent = present
			if present {
				y = *v
			}
		})

		obs.recordAnyUpdate(x.V, y.V, yPresent)

		_ = idx

		return h.Idle.Park(ctx)
	}
}

func runAnyUpdateWriterX(ctx context.Context, h anyUpdateWriterXHandles, _ struct{}) error {
	if err := h.Write.Write(ctx, anyUpdateX{V: 42}); err != nil {
		return err
	}

	return h.Idle.Park(ctx)
}

func runAnyUpdateWriterY(ctx context.Context, h anyUpdateWriterYHandles, _ struct{}) error {
	return h.Idle.Park(ctx)
}
