// Package actorrt is a cooperative, single-threaded actor runtime.
//
// A fixed set of actors communicate exclusively through a datastore of
// typed slots. The datastore is validated once, at [Build] time: every
// slot has exactly one writer, and readers are either any number of
// ordinary readers or a single exclusive reader, never both. Once built,
// the runtime never allocates on its steady-state polling path.
//
// Go has no async/await or Pin, so the scheduler in this package (see
// executor.go) reproduces "one actor's code runs at a time, in
// declaration order" with a goroutine per actor plus a strict turn-handoff
// channel protocol, rather than hand-polling Futures. See DESIGN.md for
// the rationale.
package actorrt
