package actorrt

import (
	"context"
	"reflect"
	"sync"
)

// Store is the pinned collection of the generation source and every slot
// required by a validated actor set. Once returned from [Build], a Store
// must never be copied by value — always pass *Store — since handles hold
// pointers to the Slot values it owns.
type Store struct {
	gen *GenerationSource

	mu    sync.Mutex
	slots map[reflect.Type]any

	tracer Tracer
}

// newStore returns an empty store. Slots are created lazily, the first
// time a request.go Request* function resolves a given type, so that
// exactly one Slot[T] is ever allocated per type regardless of how many
// actors reference it or in what order they're bound.
func newStore() *Store {
	return &Store{
		gen:    NewGenerationSource(),
		slots:  make(map[reflect.Type]any),
		tracer: noopTracer{},
	}
}

// WithTracer installs t as the store's telemetry sink. Must be called
// before [Executor.Run].
func (s *Store) WithTracer(t Tracer) {
	if t == nil {
		t = noopTracer{}
	}

	s.tracer = t
}

// Generation returns the store's generation source. Exposed for tests and
// for advanced actors that need to read the raw generation (e.g. for
// logging) without going through a handle.
func (s *Store) Generation() *GenerationSource {
	return s.gen
}

// getOrCreateSlot returns the Slot[T] for type T, creating it on first
// use. Because T is a compile-time type parameter of this function (not a
// reflect.Type computed at runtime), Go's generics monomorphize it the
// same way they would any other generic call — there is no reflection
// trick needed to "construct a Slot[T] for a T known only at runtime".
func getOrCreateSlot[T Storable](s *Store) *Slot[T] {
	typ := reflect.TypeFor[T]()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.slots[typ]; ok {
		return existing.(*Slot[T]) //nolint:forcetypeassert // keyed by T's own reflect.Type
	}

	slot := NewSlot[T]()
	s.slots[typ] = slot

	return slot
}

// ActorDescriptor is produced by [Declare]. It is a sealed interface (its
// methods are unexported) because actorrt does not support registering
// actors dynamically after [Build].
type ActorDescriptor interface {
	name() string
	describe() []SlotRequest
	bind(store *Store, waker *BitWaker, ctrl *turnController) func(ctx context.Context) error
}

// Build validates the declared actor set's slot access (exactly one
// writer per slot; readers either all ordinary or one exclusive), then
// returns an [Executor] ready to [Executor.Run]; each actor resolves its
// handles, and thereby its slots, during its first granted turn. A
// zero-length actors list is not an error: the returned Executor's Run is
// a no-op that returns immediately.
//
// Go has no static mechanism that could reject an inconsistent actor set
// before the program runs, so the proof happens the moment Build is
// called, before any actor's code executes. See DESIGN.md's Open
// Questions for why this is the chosen tradeoff.
func Build(actors ...ActorDescriptor) (*Executor, error) {
	if len(actors) == 0 {
		return &Executor{empty: true}, nil
	}

	accesses := make([]actorAccess, len(actors))
	for i, a := range actors {
		accesses[i] = actorAccess{name: a.name(), requests: a.describe()}
	}

	if err := validate(accesses); err != nil {
		return nil, err
	}

	store := newStore()
	ex := newExecutor(len(actors))
	ex.store = store

	for i, a := range actors {
		ex.names[i] = a.name()
		ex.runners[i] = a.bind(store, ex.waker(i), ex.controllers[i])
	}

	return ex, nil
}
