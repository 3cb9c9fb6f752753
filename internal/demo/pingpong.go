package demo

import (
	"context"

	"github.com/kernelcore/actorrt"
)

type pingActorHandles struct {
	Write actorrt.Writer[Ping]
	Read  actorrt.Reader[Pong]
}

type pongActorHandles struct {
	Write actorrt.Writer[Pong]
	Read  actorrt.Reader[Ping]
}

// NewPingPong returns the two-actor ping-pong handshake: A writes Ping and
// reads Pong, B writes Pong and reads Ping. A is declared first, so it
// takes the first turn of round 1 and seeds the exchange with Ping(0).
func NewPingPong(obs *Observer) []actorrt.ActorDescriptor {
	actorA := actorrt.Declare(
		obs,
		func(rc *actorrt.RequestContext) pingActorHandles {
			return pingActorHandles{
				Write: actorrt.RequestWriter[Ping](rc),
				Read:  actorrt.RequestReader[Pong](rc),
			}
		},
		runPingActor,
	)

	actorB := actorrt.Declare(
		obs,
		func(rc *actorrt.RequestContext) pongActorHandles {
			return pongActorHandles{
				Write: actorrt.RequestWriter[Pong](rc),
				Read:  actorrt.RequestReader[Ping](rc),
			}
		},
		runPongActor,
	)

	return []actorrt.ActorDescriptor{actorA, actorB}
}

func runPingActor(ctx context.Context, h pingActorHandles, obs *Observer) error {
	if err := h.Write.Write(ctx, Ping{Seq: 0}); err != nil {
		return err
	}

	for {
		var seen Pong

		if err := h.Read.ReadUpdated(ctx, func(v *Pong) { seen = *v }); err != nil {
			return err
		}

		obs.recordPong(seen)

		if err := h.Write.Write(ctx, Ping{Seq: seen.Seq + 1}); err != nil {
			return err
		}
	}
}

func runPongActor(ctx context.Context, h pongActorHandles, obs *Observer) error {
	for {
		var seen Ping

		if err := h.Read.ReadUpdated(ctx, func(v *Ping) { seen = *v }); err != nil {
			return err
		}

		obs.recordPing(seen)

		if err := h.Write.Write(ctx, Pong{Seq: seen.Seq}); err != nil {
			return err
		}
	}
}
