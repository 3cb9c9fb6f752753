package actorrt

import "sync"

// borrow states for Slot.borrowed: zero or positive is a live count of
// shared borrows, borrowExclusive is a sentinel outside that range so it
// can never collide with a legitimate shared-borrow count.
const (
	borrowFree      = 0
	borrowExclusive = -1
)

// Slot is a typed single-value cell holding at most one value of T, plus
// its bookkeeping: presence, write generation, and a
// borrow counter for interior-mutability discipline.
//
// A Slot is constructed once, the first time an actor's Request* call
// resolves T (getOrCreateSlot in store.go), and never moved afterward; callers
// reach it only through a pointer held by the pinned [Store]. Grounded on
// pkg/slotcache's Cache: a single mutex guards the value the way
// fileRegistryEntry.mu guards the mmap, except there is exactly one writer
// here, so the mutex protects the borrow counter rather than serializing
// concurrent writers.
type Slot[T Storable] struct {
	mu         sync.Mutex
	present    bool
	value      T
	generation uint64
	borrowed   int // count of live shared borrows; borrowExclusive (-1) is checked by TryBorrow but never set here
}

// NewSlot returns an empty slot.
func NewSlot[T Storable]() *Slot[T] {
	return &Slot[T]{}
}

// TryBorrow runs fn with a pointer to the current value if present. It
// panics with [errBorrowViolation] if the borrow state is borrowExclusive;
// Take and Write do their work under the slot's mutex and never set that
// state, so in this package the check does not fire.
func (s *Slot[T]) TryBorrow(fn func(value *T, present bool)) {
	s.mu.Lock()
	if s.borrowed == borrowExclusive {
		s.mu.Unlock()
		panic(errBorrowViolation)
	}

	s.borrowed++
	present := s.present
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.borrowed--
		s.mu.Unlock()
	}()

	if present {
		fn(&s.value, true)
	} else {
		var zero T
		fn(&zero, false)
	}
}

// Take removes and returns the current value. Only an ExclusiveReader may
// call this (enforced by the handle, not the slot).
func (s *Slot[T]) Take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.borrowed != borrowFree {
		panic(errBorrowViolation)
	}

	if !s.present {
		var zero T
		return zero, false
	}

	v := s.value
	var zero T
	s.value = zero
	s.present = false

	return v, true
}

// Write stores value and stamps the slot's write generation to
// currentGeneration. It fails with [errWouldOverwriteRound] if the slot
// still holds a value written at currentGeneration (i.e. this round); a
// value taken since that write no longer blocks a new one. The caller
// ([Writer.Write]) turns that into a suspend-until-next-round instead of
// surfacing it.
func (s *Slot[T]) Write(value T, currentGeneration uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.borrowed != borrowFree {
		panic(errBorrowViolation)
	}

	if s.present && s.generation == currentGeneration {
		return errWouldOverwriteRound
	}

	s.value = value
	s.present = true
	s.generation = currentGeneration

	return nil
}

// generationAt returns the generation the slot was last written at, and
// whether it has ever been written.
func (s *Slot[T]) generationAt() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation, s.present
}
