// Package demo provides small, fully worked actor sets exercising each of
// the runtime's end-to-end scenarios: ping-pong handshake, exclusive-reader
// draining, multi-slot "any update" waits, initialized-reader ordering,
// and memory-pool chunk lifecycle. Each scenario records what it observed
// into an Observer so tests can assert on it without parsing stdout.
package demo

import (
	"sync"

	"github.com/kernelcore/actorrt"
	"github.com/kernelcore/actorrt/memorypool"
)

// Ping and Pong are the two slot types the ping-pong scenario bounces
// between actors A and B.
type Ping struct {
	actorrt.Base
	Seq int
}

// Pong is B's reply type in the ping-pong scenario.
type Pong struct {
	actorrt.Base
	Seq int
}

// Observer records values actors observe during a run, guarded by a mutex
// since actor turns never overlap but test goroutines may read concurrently
// with the executor driving the next round.
type Observer struct {
	mu          sync.Mutex
	lastPing    Ping
	lastPong    Pong
	drained     []int
	anyUpdateX  int
	anyUpdateY  int
	anyUpdateOK bool
	initValue   int
	initSeen    bool
	chunkValue  string
	chunkID     string
}

func (o *Observer) recordPing(v Ping) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastPing = v
}

func (o *Observer) recordPong(v Pong) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastPong = v
}

// LastPing returns the last Ping value B observed.
func (o *Observer) LastPing() Ping {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastPing
}

// LastPong returns the last Pong value A observed.
func (o *Observer) LastPong() Pong {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastPong
}

func (o *Observer) recordDrained(v int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.drained = append(o.drained, v)
}

// Drained returns every value the exclusive reader took, in order.
func (o *Observer) Drained() []int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]int(nil), o.drained...)
}

func (o *Observer) recordAnyUpdate(x, y int, yOK bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.anyUpdateX = x
	o.anyUpdateY = y
	o.anyUpdateOK = yOK
}

// AnyUpdate returns what the any-update scenario's reader last observed:
// X's value, Y's value (zero if absent), and whether Y was present.
func (o *Observer) AnyUpdate() (x, y int, yPresent bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.anyUpdateX, o.anyUpdateY, o.anyUpdateOK
}

func (o *Observer) recordInit(v int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.initValue = v
	o.initSeen = true
}

// InitValue returns the value the initialized-reader scenario observed and
// whether it ever observed one.
func (o *Observer) InitValue() (int, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.initValue, o.initSeen
}

func (o *Observer) recordChunk(id, v string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.chunkID = id
	o.chunkValue = v
}

// ChunkValue returns the payload the chunk-lifecycle scenario's reader took.
func (o *Observer) ChunkValue() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.chunkValue
}

// ChunkID returns the UUID the producer stamped on the payload of the chunk
// the chunk-lifecycle scenario's reader took.
func (o *Observer) ChunkID() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.chunkID
}

// ChunkPayload is the memory-pool element type used by the chunk-lifecycle
// scenario.
type ChunkPayload struct {
	ID    string
	Value string
}

// ChunkMsg is the slot type carrying a pool chunk between actors.
type ChunkMsg struct {
	actorrt.Base
	Chunk memorypool.Chunk[ChunkPayload]
}
