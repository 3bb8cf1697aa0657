// Package errs defines the sentinel error kinds raised by the database and
// runtime packages. Cycle breaks and enum-parse misses are not part of
// this taxonomy: both recover locally and are only ever reported on the
// debug channel (dlog), never returned as a Go error.
package errs

import "errors"

var (
	// ErrSchemaMismatch is raised by validateSchema when the struct/enum
	// counts or fingerprints disagree with what the generated code expects.
	ErrSchemaMismatch = errors.New("datacore: schema mismatch")

	// ErrBadIndex is raised when a struct or instance index is out of range.
	ErrBadIndex = errors.New("datacore: index out of range")

	// ErrUnknownRecord is raised when a GUID has no entry in the main-record
	// index. Reference resolution recovers from this locally (the reference
	// resolves to nil); callers that ask for a record directly see it.
	ErrUnknownRecord = errors.New("datacore: unknown record")

	// ErrEndOfBuffer is raised when a primitive read would pass the end of
	// the cursor's backing slice.
	ErrEndOfBuffer = errors.New("datacore: read past end of buffer")

	// ErrNullDispatch is raised when the dispatch table returns nil for a
	// non-sentinel struct index, indicating generator/runtime drift the
	// fingerprint check failed to catch.
	ErrNullDispatch = errors.New("datacore: dispatch returned nil for non-null index")

	// ErrTypeMismatch is raised when a cached instance's concrete type is
	// incompatible with the statically requested type parameter.
	ErrTypeMismatch = errors.New("datacore: cached instance type mismatch")
)
