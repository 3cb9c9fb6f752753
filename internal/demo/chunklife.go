package demo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kernelcore/actorrt"
	"github.com/kernelcore/actorrt/memorypool"
)

type chunkProducerHandles struct {
	Write actorrt.Writer[ChunkMsg]
	Idle  actorrt.Idle
}

type chunkConsumerHandles struct {
	Take actorrt.ExclusiveReader[ChunkMsg]
	Idle actorrt.Idle
}

// NewChunkLifecycle returns the memory-pool chunk-lifecycle scenario:
// producer S acquires a chunk from pool, writes it to slot C; exclusive
// reader R takes the chunk and drops it. After the drop, pool.Available()
// is expected to return to the pool's full capacity.
func NewChunkLifecycle(obs *Observer, pool *memorypool.Pool[ChunkPayload]) []actorrt.ActorDescriptor {
	actorR := actorrt.Declare(
		obs,
		func(rc *actorrt.RequestContext) chunkConsumerHandles {
			return chunkConsumerHandles{
				Take: actorrt.RequestExclusiveReader[ChunkMsg](rc),
				Idle: actorrt.RequestIdle(rc),
			}
		},
		runChunkConsumer,
	)

	actorS := actorrt.Declare(
		pool,
		func(rc *actorrt.RequestContext) chunkProducerHandles {
			return chunkProducerHandles{
				Write: actorrt.RequestWriter[ChunkMsg](rc),
				Idle:  actorrt.RequestIdle(rc),
			}
		},
		runChunkProducer,
	)

	return []actorrt.ActorDescriptor{actorR, actorS}
}

func runChunkProducer(ctx context.Context, h chunkProducerHandles, pool *memorypool.Pool[ChunkPayload]) error {
	chunk, ok := pool.Acquire(ChunkPayload{ID: uuid.NewString(), Value: "v1"})
	if !ok {
		return fmt.Errorf("demo: chunk pool exhausted")
	}

	if err := h.Write.Write(ctx, ChunkMsg{Chunk: chunk}); err != nil {
		return err
	}

	return h.Idle.Park(ctx)
}

func runChunkConsumer(ctx context.Context, h chunkConsumerHandles, obs *Observer) error {
	msg, err := h.Take.TakeUpdated(ctx)
	if err != nil {
		return err
	}

	payload := msg.Chunk.Value()
	obs.recordChunk(payload.ID, payload.Value)
	msg.Chunk.Drop()

	return h.Idle.Park(ctx)
}
