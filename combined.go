package actorrt

import "context"

// pollable is satisfied by *Reader[T], *InitializedReader[T], and
// *ExclusiveReader[T] for any T. It is unexported because WaitForAny is
// the only intended caller.
type pollable interface {
	IsUpdated() bool
	suspendVia(ctx context.Context) error
}

// WaitForAny suspends until at least one of readers reports IsUpdated,
// then returns the index of the first one found ready (in argument
// order). Go has no fixed-arity tuple type, so the combinator takes
// however many *Reader-family handles the caller passes.
//
//	n, err := actorrt.WaitForAny(ctx, &handles.X, &handles.Y)
//	switch n {
//	case 0: // X updated
//	case 1: // Y updated
//	}
func WaitForAny(ctx context.Context, readers ...pollable) (int, error) {
	if len(readers) == 0 {
		return -1, nil
	}

	ready := func() bool {
		for _, r := range readers {
			if r.IsUpdated() {
				return true
			}
		}

		return false
	}

	for !ready() {
		if err := readers[0].suspendVia(ctx); err != nil {
			return -1, err
		}
	}

	for i, r := range readers {
		if r.IsUpdated() {
			return i, nil
		}
	}

	return -1, nil
}
