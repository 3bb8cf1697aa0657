package runtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dcoretech/dcore/database"
)

// LazyRef is the deferred-resolution wrapper around a reference or
// pointer property. A nil *LazyRef[T] is the representation of a null
// reference/pointer; NewReferenceRef and NewPointerRef return nil for
// sentinel inputs so generated code never has to branch on nullness
// itself.
type LazyRef[T any] struct {
	rt *Runtime

	recordID    uuid.UUID
	hasRecordID bool

	// structIndex/instanceIndex are known up front for a pointer (already
	// resolved on disk) and filled in lazily for a reference, via a
	// main-record lookup on first Value() call.
	structIndex   int32
	instanceIndex int32
	indexKnown    bool

	once     sync.Once
	value    T
	err      error
	accessed bool

	isExternalFile   bool
	externalFilePath database.StringRef
	hasExternalFile  bool
}

// NewReferenceRef wraps a GUID-keyed reference property. Returns nil if
// id is the zero GUID, the archive's null-reference sentinel.
func NewReferenceRef[T any](rt *Runtime, id uuid.UUID) *LazyRef[T] {
	if id == uuid.Nil {
		return nil
	}
	return &LazyRef[T]{rt: rt, recordID: id, hasRecordID: true}
}

// NewPointerRef wraps an already-resolved (structIndex, instanceIndex)
// pointer property. Returns nil if either half is database.NullIndex.
func NewPointerRef[T any](rt *Runtime, structIndex, instanceIndex int32) *LazyRef[T] {
	if structIndex == database.NullIndex || instanceIndex == database.NullIndex {
		return nil
	}
	return &LazyRef[T]{rt: rt, structIndex: structIndex, instanceIndex: instanceIndex, indexKnown: true}
}

// Value resolves and returns the referenced value, materialising and
// caching it on first call. A reference to an unknown GUID recovers
// locally: Value returns the zero value of T and no error, after
// debug-logging the miss. A reference into an in-flight cycle likewise
// yields the zero value with no error (GetOrReadInstancePolymorphic's
// own cycle-break path).
func (r *LazyRef[T]) Value() (T, error) {
	r.once.Do(func() {
		defer func() { r.accessed = true }()
		if !r.indexKnown {
			info, ok := r.rt.db.TryGetRecordInfo(r.recordID)
			if !ok {
				r.rt.logUnknownRecord(r.recordID)
				return
			}
			r.structIndex = info.StructIndex
			r.instanceIndex = info.InstanceIndex
			r.isExternalFile = info.IsMain
			r.hasExternalFile = info.HasFileName
			r.externalFilePath = info.FileNameOffset
			r.indexKnown = true
		}
		v, err := GetOrReadInstancePolymorphic[T](r.rt, r.structIndex, r.instanceIndex)
		if err != nil {
			r.err = err
			return
		}
		r.value = v
	})
	return r.value, r.err
}

// RecordID returns the reference's GUID and whether it has one (a
// pointer property, resolved up front, never does).
func (r *LazyRef[T]) RecordID() (uuid.UUID, bool) { return r.recordID, r.hasRecordID }

// IsExternalFile reports whether the resolved target is itself a main
// record with its own archive file name. Meaningful only after Value has
// been called at least once.
func (r *LazyRef[T]) IsExternalFile() bool { return r.isExternalFile }

// ExternalFilePath returns the target's file-name StringRef, if any.
func (r *LazyRef[T]) ExternalFilePath() (database.StringRef, bool) {
	return r.externalFilePath, r.hasExternalFile
}

// StructIndex returns the target's struct index. Zero-valued until
// resolved for a reference (use IsResolved to check).
func (r *LazyRef[T]) StructIndex() int32 { return r.structIndex }

// InstanceIndex returns the target's instance index, with the same
// caveat as StructIndex.
func (r *LazyRef[T]) InstanceIndex() int32 { return r.instanceIndex }

// IsResolved reports whether Value has been called at least once.
func (r *LazyRef[T]) IsResolved() bool { return r.accessed }
