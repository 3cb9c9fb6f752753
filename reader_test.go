package actorrt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requesting an InitializedReader must suspend the requesting actor's
// construction until the slot's first write is visible: the actor's body
// never runs against an absent value, and it does not start in the same
// round the write happened (visibility is round-delimited).
func Test_RequestInitializedReader_Suspends_Until_The_First_Write_Is_Visible(t *testing.T) {
	t.Parallel()

	type writerHandles struct {
		Write Writer[counterSlot]
		Idle  Idle
	}

	type initHandles struct {
		X    InitializedReader[counterSlot]
		Idle Idle
	}

	got := make(chan int, 1)

	writer := Declare(struct{}{},
		func(rc *RequestContext) writerHandles {
			return writerHandles{
				Write: RequestWriter[counterSlot](rc),
				Idle:  RequestIdle(rc),
			}
		},
		func(ctx context.Context, h writerHandles, _ struct{}) error {
			if err := h.Write.Write(ctx, counterSlot{N: 7}); err != nil {
				return err
			}

			return h.Idle.Park(ctx)
		},
	)

	reader := Declare(struct{}{},
		func(rc *RequestContext) initHandles {
			return initHandles{
				X:    RequestInitializedReader[counterSlot](rc),
				Idle: RequestIdle(rc),
			}
		},
		func(ctx context.Context, h initHandles, _ struct{}) error {
			var v counterSlot

			h.X.Read(func(value *counterSlot) { v = *value })
			got <- v.N

			return h.Idle.Park(ctx)
		},
	)

	ex, err := Build(writer, reader)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = ex.RunOnce(ctx)
	require.NoError(t, err)

	select {
	case v := <-got:
		t.Fatalf("reader body ran in the write's own round, observed %d", v)
	default:
	}

	_, err = ex.RunOnce(ctx)
	require.NoError(t, err)

	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	default:
		t.Fatal("reader construction never completed after the write became visible")
	}
}

// A value written by the sole writer must come back unchanged from a
// reader's cloning read, and the clone must stay valid after the reader
// suspends again.
func Test_ReadClonedUpdated_Round_Trips_The_Written_Value(t *testing.T) {
	t.Parallel()

	type writerHandles struct {
		Write Writer[counterSlot]
		Idle  Idle
	}

	type readerHandles struct {
		Read Reader[counterSlot]
		Idle Idle
	}

	got := make(chan counterSlot, 1)

	writer := Declare(struct{}{},
		func(rc *RequestContext) writerHandles {
			return writerHandles{
				Write: RequestWriter[counterSlot](rc),
				Idle:  RequestIdle(rc),
			}
		},
		func(ctx context.Context, h writerHandles, _ struct{}) error {
			if err := h.Write.Write(ctx, counterSlot{N: 9}); err != nil {
				return err
			}

			return h.Idle.Park(ctx)
		},
	)

	reader := Declare(struct{}{},
		func(rc *RequestContext) readerHandles {
			return readerHandles{
				Read: RequestReader[counterSlot](rc),
				Idle: RequestIdle(rc),
			}
		},
		func(ctx context.Context, h readerHandles, _ struct{}) error {
			v, err := h.Read.ReadClonedUpdated(ctx)
			if err != nil {
				return err
			}

			got <- v

			return h.Idle.Park(ctx)
		},
	)

	ex, err := Build(writer, reader)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		_, err := ex.RunOnce(ctx)
		require.NoError(t, err)
	}

	select {
	case v := <-got:
		assert.Equal(t, counterSlot{N: 9}, v)
	default:
		t.Fatal("reader never observed the write")
	}
}
