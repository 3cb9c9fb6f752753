package actorrt

import "errors"

// Configuration errors, returned by [Build]. Callers should classify them
// with errors.Is; the wrapped message names the contributing actor types.
var (
	// ErrDuplicateWriter reports that more than one actor declared a
	// Writer for the same slot type.
	ErrDuplicateWriter = errors.New("actorrt: duplicate writer")

	// ErrReaderWithoutWriter reports a slot type that is read but never
	// written; spec requires every slot to have exactly one writer.
	ErrReaderWithoutWriter = errors.New("actorrt: reader without writer")

	// ErrMixedReaderKind reports a slot type requested both as an
	// ExclusiveReader and as an ordinary Reader/InitializedReader.
	ErrMixedReaderKind = errors.New("actorrt: mixed exclusive and ordinary readers")
)

// errBorrowViolation is panicked when Take or Write is attempted while a
// borrow from TryBorrow is still outstanding; it is never returned, since
// a broken borrow contract is not a recoverable condition. The analogous
// double-return-to-pool violation is memorypool's own concern (see
// memorypool.go), since that package intentionally has no dependency on
// this one.
var errBorrowViolation = errors.New("actorrt: borrow discipline violated")

// errWouldOverwriteRound is an internal sentinel returned by Slot.Write
// when the slot was already written this round. The Writer handle turns
// this into a suspend-until-next-round instead of surfacing it.
var errWouldOverwriteRound = errors.New("actorrt: write would overwrite within same round")
