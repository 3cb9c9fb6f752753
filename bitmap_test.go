package actorrt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewWakeBitmap_Starts_With_Every_Bit_Set(t *testing.T) {
	t.Parallel()

	b := newWakeBitmap(5)
	assert.True(t, b.any())

	got := b.resetAll()
	want := []int{0, 1, 2, 3, 4}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resetAll mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, b.any(), "resetAll must clear every bit it returned")
}

func Test_WakeBitmap_Set_Then_ResetAll_Round_Trips_A_Single_Bit(t *testing.T) {
	t.Parallel()

	b := newWakeBitmap(4)
	b.resetAll()

	b.set(2)

	got := b.resetAll()
	if diff := cmp.Diff([]int{2}, got); diff != "" {
		t.Fatalf("resetAll mismatch (-want +got):\n%s", diff)
	}
}

// Test_WakeBitmap_Handles_The_Word_Boundary exercises N = wordBits + 1, the
// smallest actor count that spans two backing words, to catch off-by-one
// errors in the word/bit index arithmetic.
func Test_WakeBitmap_Handles_The_Word_Boundary(t *testing.T) {
	t.Parallel()

	n := wordBits + 1
	b := newWakeBitmap(n)
	b.resetAll()

	b.set(0)
	b.set(wordBits - 1)
	b.set(wordBits)

	got := b.resetAll()
	want := []int{0, wordBits - 1, wordBits}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resetAll mismatch at word boundary (-want +got):\n%s", diff)
	}

	require.Len(t, b.words, 2, "65 actors must pack into exactly two 64-bit words")
}

func Test_WakeBitmap_Set_Is_Idempotent(t *testing.T) {
	t.Parallel()

	b := newWakeBitmap(3)
	b.resetAll()

	b.set(1)
	b.set(1)
	b.set(1)

	got := b.resetAll()
	assert.Equal(t, []int{1}, got)
}

func Test_BitWaker_Wake_Sets_Its_Own_Bit_And_Notifies(t *testing.T) {
	t.Parallel()

	b := newWakeBitmap(2)
	b.resetAll()

	notified := make(chan struct{}, 1)
	w := &BitWaker{bitmap: b, index: 1, notify: func() { notified <- struct{}{} }}

	w.Wake()

	assert.Equal(t, []int{1}, b.resetAll())

	select {
	case <-notified:
	default:
		t.Fatal("Wake did not call notify")
	}
}
