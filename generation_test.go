package actorrt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWaker struct{ n int }

func (w *countingWaker) Wake() { w.n++ }

func Test_Advance_Wakes_Every_Stale_Waiter_And_Leaves_Fresh_Ones(t *testing.T) {
	t.Parallel()

	gen := NewGenerationSource()

	staleWaker := &countingWaker{}
	stale := gen.NewWaiter(staleWaker)

	gen.Advance() // counter is now 1; stale's snapshot (0) is behind.

	freshWaker := &countingWaker{}
	fresh := gen.NewWaiter(freshWaker) // snapshot taken at counter==1, up to date.

	gen.Advance() // counter is now 2; both waiters are stale relative to it.

	assert.Equal(t, 2, staleWaker.n, "stale waiter should have been woken by both advances")
	assert.Equal(t, 1, freshWaker.n, "fresh waiter should only be woken by the advance after it registered")
	assert.True(t, stale.IsStale())
	assert.True(t, fresh.IsStale())
}

func Test_Waiter_Refresh_Clears_Staleness(t *testing.T) {
	t.Parallel()

	gen := NewGenerationSource()
	w := gen.NewWaiter(&countingWaker{})

	gen.Advance()
	require.True(t, w.IsStale())

	w.Refresh()
	assert.False(t, w.IsStale())
	assert.Equal(t, gen.Current(), w.Snapshot())
}

func Test_Advance_Is_Idempotent_Per_Waiter_Until_Refresh(t *testing.T) {
	t.Parallel()

	gen := NewGenerationSource()
	waker := &countingWaker{}
	w := gen.NewWaiter(waker)

	gen.Advance()
	gen.Advance()
	gen.Advance()

	// Three advances, but the waiter never refreshed in between: from its
	// perspective it is simply stale, observed once. The Wake callback does
	// fire on every advance that leaves it stale, but a consumer driving
	// off IsStale sees a single logical "there is an update" signal until
	// it calls Refresh, which is the round-trip law this test checks.
	assert.True(t, w.IsStale())
	w.Refresh()
	assert.False(t, w.IsStale())
}

func Test_Waiter_Close_Deregisters_So_Future_Advances_Do_Not_Wake_It(t *testing.T) {
	t.Parallel()

	gen := NewGenerationSource()
	waker := &countingWaker{}
	w := gen.NewWaiter(waker)

	w.Close()
	gen.Advance()

	assert.Equal(t, 0, waker.n)
}

func Test_WaitUntil_Suspends_Until_Ready_Then_Returns(t *testing.T) {
	t.Parallel()

	gen := NewGenerationSource()
	w := gen.NewWaiter(&countingWaker{})

	suspends := 0
	suspend := func(context.Context) error {
		suspends++
		gen.Advance() // simulate the round advancing while this actor is parked.

		return nil
	}

	err := w.WaitUntil(context.Background(), w.IsStale, suspend)
	require.NoError(t, err)
	assert.Equal(t, 1, suspends)
}

func Test_WaitUntil_Propagates_Suspend_Error(t *testing.T) {
	t.Parallel()

	gen := NewGenerationSource()
	w := gen.NewWaiter(&countingWaker{})

	boom := context.Canceled
	suspend := func(context.Context) error { return boom }

	err := w.WaitUntil(context.Background(), func() bool { return false }, suspend)
	assert.ErrorIs(t, err, boom)
}

func FuzzGenerationSource_Waiter_Staleness_Matches_Counter(f *testing.F) {
	f.Add(uint8(0))
	f.Add(uint8(1))
	f.Add(uint8(5))
	f.Add(uint8(255))

	f.Fuzz(func(t *testing.T, advances uint8) {
		gen := NewGenerationSource()
		w := gen.NewWaiter(&countingWaker{})

		for i := uint8(0); i < advances; i++ {
			gen.Advance()
		}

		if advances == 0 {
			if w.IsStale() {
				t.Fatalf("waiter should not be stale with zero advances")
			}

			return
		}

		if !w.IsStale() {
			t.Fatalf("waiter should be stale after %d advances", advances)
		}

		w.Refresh()

		if w.IsStale() {
			t.Fatalf("waiter should not be stale immediately after refresh")
		}
	})
}
