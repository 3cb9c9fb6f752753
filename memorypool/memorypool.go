// Package memorypool implements the fixed-capacity arena add-on: a pool of
// SIZE pre-allocated slots of type T, handed out as move-only Chunk handles
// so that passing a large payload between actors is a pointer move rather
// than a copy. It has no dependency on the rest of actorrt and can be used
// with a plain Go channel just as easily as with an actorrt slot (there, a
// storable wrapper struct carries the Chunk, as internal/demo's ChunkMsg
// does).
package memorypool

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-capacity arena of Capacity() elements of type T. The zero
// value is not usable; construct with New.
type Pool[T any] struct {
	slots     []T
	available []atomic.Bool
	mu        sync.Mutex
}

// New returns a pool with capacity slots, all initially available.
func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{
		slots:     make([]T, capacity),
		available: make([]atomic.Bool, capacity),
	}

	for i := range p.available {
		p.available[i].Store(true)
	}

	return p
}

// Capacity returns the pool's fixed size.
func (p *Pool[T]) Capacity() int {
	return len(p.slots)
}

// Available returns the number of chunks currently not checked out. Each
// flag is read with acquire ordering so a count taken right after a
// concurrent Acquire/Drop sees a consistent snapshot.
func (p *Pool[T]) Available() int {
	n := 0

	for i := range p.available {
		if p.available[i].Load() {
			n++
		}
	}

	return n
}

// Acquire checks out the first available slot, stores value in it, and
// returns an owning Chunk. It reports ok=false if the pool is exhausted.
func (p *Pool[T]) Acquire(value T) (Chunk[T], bool) {
	for i := range p.available {
		if p.available[i].CompareAndSwap(true, false) {
			p.slots[i] = value

			return Chunk[T]{pool: p, index: i}, true
		}
	}

	return Chunk[T]{}, false
}

// release returns index to the pool. Panics if the slot was already
// available: returning a chunk twice is a programmer error, not a
// recoverable condition.
func (p *Pool[T]) release(index int) {
	var zero T

	p.mu.Lock()
	p.slots[index] = zero
	p.mu.Unlock()

	if !p.available[index].CompareAndSwap(false, true) {
		panic(fmt.Errorf("memorypool: chunk %d returned twice", index))
	}
}

// Chunk is a move-only owning handle to one slot of a Pool. Its zero value
// is not a valid chunk; the only way to obtain one is [Pool.Acquire]. A
// Chunk must be passed by value exactly once downstream (inside a message
// struct written to an actorrt slot, say) and Dropped exactly once at the
// end of its life — copying a Chunk and dropping both copies is the
// double-return programmer error the pool panics on.
type Chunk[T any] struct {
	pool  *Pool[T]
	index int
}

// Value returns a pointer to the chunk's payload.
func (c Chunk[T]) Value() *T {
	return &c.pool.slots[c.index]
}

// Drop returns the chunk to its pool, making the slot available again.
func (c Chunk[T]) Drop() {
	c.pool.release(c.index)
}
