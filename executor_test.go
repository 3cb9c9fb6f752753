package actorrt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterSlot struct {
	Base
	N int
}

func Test_Build_With_Zero_Actors_Returns_A_NoOp_Executor(t *testing.T) {
	t.Parallel()

	ex, err := Build()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, ex.Run(ctx))
	assert.Equal(t, uint64(0), ex.Generation())
}

func Test_Build_Rejects_A_Reader_Whose_Slot_Has_No_Writer(t *testing.T) {
	t.Parallel()

	type handles struct {
		Read Reader[counterSlot]
		Idle Idle
	}

	a := Declare(struct{}{},
		func(rc *RequestContext) handles {
			return handles{
				Read: RequestReader[counterSlot](rc),
				Idle: RequestIdle(rc),
			}
		},
		func(ctx context.Context, h handles, _ struct{}) error {
			return h.Idle.Park(ctx)
		},
	)

	_, err := Build(a)
	assert.ErrorIs(t, err, ErrReaderWithoutWriter)
}

// Test_Writer_Write_Twice_Without_Yielding_Suspends_Until_The_Round_Advances
// drives a single writer actor that calls Write twice back-to-back with no
// other await between the calls. The second call must block (rather than
// error or clobber the first value) until RunOnce advances the
// generation: one write per slot per round.
func Test_Writer_Write_Twice_Without_Yielding_Suspends_Until_The_Round_Advances(t *testing.T) {
	t.Parallel()

	type handles struct {
		Write Writer[counterSlot]
		Idle  Idle
	}

	secondWriteDone := make(chan struct{})

	var writesObserved int

	var mu sync.Mutex

	a := Declare(struct{}{},
		func(rc *RequestContext) handles {
			return handles{
				Write: RequestWriter[counterSlot](rc),
				Idle:  RequestIdle(rc),
			}
		},
		func(ctx context.Context, h handles, _ struct{}) error {
			if err := h.Write.Write(ctx, counterSlot{N: 1}); err != nil {
				return err
			}

			mu.Lock()
			writesObserved++
			mu.Unlock()

			if err := h.Write.Write(ctx, counterSlot{N: 2}); err != nil {
				return err
			}

			mu.Lock()
			writesObserved++
			mu.Unlock()

			close(secondWriteDone)

			return h.Idle.Park(ctx)
		},
	)

	ex, err := Build(a)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = ex.RunOnce(ctx)
	require.NoError(t, err)

	mu.Lock()
	after1 := writesObserved
	mu.Unlock()
	assert.Equal(t, 1, after1, "the second Write must not complete within the same round as the first")

	select {
	case <-secondWriteDone:
		t.Fatal("second write completed before a second round was run")
	default:
	}

	_, err = ex.RunOnce(ctx)
	require.NoError(t, err)

	select {
	case <-secondWriteDone:
	case <-time.After(time.Second):
		t.Fatal("second write never completed after the round advanced")
	}
}

func Test_RunOnce_On_A_Freshly_Built_Executor_Polls_Every_Actor_Once(t *testing.T) {
	t.Parallel()

	type handles struct {
		Write Writer[counterSlot]
		Idle  Idle
	}

	polled := make(chan struct{}, 1)

	a := Declare(struct{}{},
		func(rc *RequestContext) handles {
			return handles{
				Write: RequestWriter[counterSlot](rc),
				Idle:  RequestIdle(rc),
			}
		},
		func(ctx context.Context, h handles, _ struct{}) error {
			polled <- struct{}{}
			return h.Idle.Park(ctx)
		},
	)

	ex, err := Build(a)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	didWork, err := ex.RunOnce(ctx)
	require.NoError(t, err)
	assert.True(t, didWork)

	select {
	case <-polled:
	default:
		t.Fatal("actor was never granted a turn")
	}

	assert.Equal(t, uint64(1), ex.Generation())
}

func Test_Close_Is_Idempotent_And_Safe_On_An_Empty_Executor(t *testing.T) {
	t.Parallel()

	ex, err := Build()
	require.NoError(t, err)

	ex.Close()
	ex.Close()
}

func Test_Close_After_Running_A_Round_Does_Not_Panic(t *testing.T) {
	t.Parallel()

	type handles struct {
		Write Writer[counterSlot]
		Idle  Idle
	}

	a := Declare(struct{}{},
		func(rc *RequestContext) handles {
			return handles{
				Write: RequestWriter[counterSlot](rc),
				Idle:  RequestIdle(rc),
			}
		},
		func(ctx context.Context, h handles, _ struct{}) error {
			if err := h.Write.Write(ctx, counterSlot{N: 1}); err != nil {
				return err
			}

			return h.Idle.Park(ctx)
		},
	)

	ex, err := Build(a)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = ex.RunOnce(ctx)
	require.NoError(t, err)

	ex.Close()
}

func Test_Run_Propagates_An_Actor_Error(t *testing.T) {
	t.Parallel()

	sentinel := assert.AnError

	a := Declare(struct{}{},
		func(rc *RequestContext) struct{} { return struct{}{} },
		func(ctx context.Context, h struct{}, _ struct{}) error {
			return sentinel
		},
	)

	ex, err := Build(a)
	require.NoError(t, err)

	err = ex.Run(context.Background())
	assert.ErrorIs(t, err, sentinel)
}
