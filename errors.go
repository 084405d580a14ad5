package planar

import "errors"

// Failure classes. Every error produced by the library wraps exactly one of
// these sentinels, so hosts can classify failures with errors.Is regardless
// of the message text.
var (
	// ErrUnknown is an unclassified failure.
	ErrUnknown = errors.New("unknown error")
	// ErrLogic is an internal invariant violation.
	ErrLogic = errors.New("internal logic error")
	// ErrOutOfMemory is an allocation failure during filter setup.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrIllegalArgument is a caller-supplied value outside its domain.
	ErrIllegalArgument = errors.New("illegal argument")
	// ErrUnsupported is a legal but unimplemented combination.
	ErrUnsupported = errors.New("unsupported operation")
)
