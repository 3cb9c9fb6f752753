package actorrt

import "context"

// Reader is a non-exclusive read handle. Any number of Readers (and
// InitializedReaders) may exist for the same slot, but never alongside an
// ExclusiveReader (enforced by [validate] at [Build] time).
//
// The zero value is only ever seen during [RequestContext] "describing"
// passes; a real Reader is always obtained via [RequestReader].
type Reader[T Storable] struct {
	slot        *Slot[T]
	store       *Store
	actor       string
	ctrl        *turnController
	waiter      *Waiter
	lastSeenGen uint64
	everSeen    bool
}

// Read runs fn with the slot's current value if present, or with
// (zero, false) if absent. It never suspends.
func (r *Reader[T]) Read(fn func(value *T, present bool)) {
	r.slot.TryBorrow(fn)
}

// IsUpdated reports, without suspending, whether the slot holds a value
// this reader has not yet consumed and that has become visible.
//
// Visibility has two independent conditions, both necessary: the write's
// stamped generation must be strictly older than the live generation
// counter (a value written during the current round — including by an
// actor declared earlier in this very round — is not visible until the
// round advances; this is write-before-read ordering), and the write's
// generation must be newer than the one this reader last consumed (so the
// same value is never reported twice). The first condition alone would
// let a reader whose own last check predates several round advances treat
// an old, already-consumed value as new the moment it next looks — it is
// the stamped write generation, not the reader's own wake/stale tracking,
// that answers "is this specific slot's value new".
func (r *Reader[T]) IsUpdated() bool {
	writeGen, present := r.slot.generationAt()
	if !present || writeGen >= r.store.gen.Current() {
		return false
	}

	return !r.everSeen || writeGen > r.lastSeenGen
}

// suspendVia lets combined.go's WaitForAny hand the actor's turn back to
// the executor without needing to know this reader's concrete T.
func (r *Reader[T]) suspendVia(ctx context.Context) error {
	return r.ctrl.Suspend(ctx)
}

// observe records the slot's current write generation as consumed and
// refreshes the waiter, which only affects how soon this reader stops
// being woken for no-op rechecks — not the IsUpdated verdict itself.
func (r *Reader[T]) observe() {
	writeGen, _ := r.slot.generationAt()
	r.lastSeenGen = writeGen
	r.everSeen = true
	r.waiter.Refresh()
}

// ReadUpdated suspends until IsUpdated, then runs fn once with the new
// value and records it as consumed so the same value is never reported as
// updated twice.
func (r *Reader[T]) ReadUpdated(ctx context.Context, fn func(value *T)) error {
	ctx, span := r.store.tracer.StartSpan(ctx, r.actor, "read_updated")
	defer span.End()

	if err := r.waiter.WaitUntil(ctx, r.IsUpdated, r.ctrl.Suspend); err != nil {
		return err
	}

	r.slot.TryBorrow(func(value *T, present bool) {
		if present {
			fn(value)
		}
	})
	r.observe()

	return nil
}

// ReadClonedUpdated behaves like ReadUpdated but returns a copy of the
// value instead of invoking a callback, for callers that need to hold the
// value across further suspension points.
func (r *Reader[T]) ReadClonedUpdated(ctx context.Context) (T, error) {
	var out T

	err := r.ReadUpdated(ctx, func(value *T) { out = *value })

	return out, err
}

// WaitForInit suspends until the slot's first write becomes visible (per
// IsUpdated's round-boundary rule), then returns an [InitializedReader]
// over the same slot.
func (r *Reader[T]) WaitForInit(ctx context.Context) (InitializedReader[T], error) {
	ctx, span := r.store.tracer.StartSpan(ctx, r.actor, "wait_for_init")
	defer span.End()

	if err := r.waiter.WaitUntil(ctx, r.IsUpdated, r.ctrl.Suspend); err != nil {
		return InitializedReader[T]{}, err
	}

	r.observe()

	return InitializedReader[T]{reader: *r}, nil
}

// InitializedReader is a Reader that has already observed at least one
// write; its Read never reports absent.
type InitializedReader[T Storable] struct {
	reader Reader[T]
}

// Read runs fn with the slot's current value, which is always present.
func (r *InitializedReader[T]) Read(fn func(value *T)) {
	r.reader.Read(func(value *T, present bool) {
		if present {
			fn(value)
		}
	})
}

// ReadUpdated behaves as [Reader.ReadUpdated].
func (r *InitializedReader[T]) ReadUpdated(ctx context.Context, fn func(value *T)) error {
	return r.reader.ReadUpdated(ctx, fn)
}

// IsUpdated behaves as [Reader.IsUpdated].
func (r *InitializedReader[T]) IsUpdated() bool {
	return r.reader.IsUpdated()
}

func (r *InitializedReader[T]) suspendVia(ctx context.Context) error {
	return r.reader.suspendVia(ctx)
}

// ExclusiveReader is the sole reader of a slot, granted destructive take
// access. Requesting one for a T any other actor also reads (exclusively
// or not) is rejected by [validate].
type ExclusiveReader[T Storable] struct {
	reader Reader[T]
}

// Read behaves as [Reader.Read].
func (r *ExclusiveReader[T]) Read(fn func(value *T, present bool)) {
	r.reader.Read(fn)
}

// ReadUpdated behaves as [Reader.ReadUpdated].
func (r *ExclusiveReader[T]) ReadUpdated(ctx context.Context, fn func(value *T)) error {
	return r.reader.ReadUpdated(ctx, fn)
}

// IsUpdated behaves as [Reader.IsUpdated].
func (r *ExclusiveReader[T]) IsUpdated() bool {
	return r.reader.IsUpdated()
}

func (r *ExclusiveReader[T]) suspendVia(ctx context.Context) error {
	return r.reader.suspendVia(ctx)
}

// Take removes and returns the current value without suspending.
func (r *ExclusiveReader[T]) Take() (T, bool) {
	return r.reader.slot.Take()
}

// TakeUpdated suspends until the slot holds a value visible to this
// reader (per IsUpdated), then takes and returns it. Combined with a
// writer that suspends on its second write per round (writer.go), this is
// how an exclusive reader drains every value a writer produces, one per
// round, with none skipped — provided the reader is declared ahead of the
// writer so its turn comes first within the round the writer's next write
// becomes eligible (see internal/demo's drain scenario).
func (r *ExclusiveReader[T]) TakeUpdated(ctx context.Context) (T, error) {
	ctx, span := r.reader.store.tracer.StartSpan(ctx, r.reader.actor, "take_updated")
	defer span.End()

	if err := r.reader.waiter.WaitUntil(ctx, r.reader.IsUpdated, r.reader.ctrl.Suspend); err != nil {
		var zero T
		return zero, err
	}

	value, _ := r.reader.slot.Take()
	r.reader.waiter.Refresh()

	return value, nil
}
