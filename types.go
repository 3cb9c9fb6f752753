package actorrt

// Storable marks a type that may inhabit a slot. Every storage-facing
// generic in this package ([Slot], the handle types, the Request*
// functions) is constrained to it, so a type that never opted in cannot
// reach a slot. The marker method is unexported: embedding [Base] is the
// only way to conform, which keeps the set of storables deliberate rather
// than structural.
type Storable interface {
	storable()
}

// Base embeds into a concrete storable type to satisfy [Storable] without
// boilerplate:
//
//	type Ping struct {
//		actorrt.Base
//		Seq int
//	}
type Base struct{}

func (Base) storable() {}

// Uninhabited names the success value an actor never produces: an actor
// only ever exits via error. Go cannot express a type with no values
// (Uninhabited{} is a valid literal), and [RunFunc] returns only an error,
// so no signature in this package uses it.
type Uninhabited struct{ _ [0]func() }

// Attr is a telemetry attribute key-value pair, see trace.go.
type Attr struct {
	Key   string
	Value any
}
