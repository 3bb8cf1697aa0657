// Package runtime implements the typed materialisation runtime: it turns
// raw instance bytes into cached, typed values on demand, resolves
// polymorphic dispatch, and breaks reference cycles. It
// knows nothing about any concrete generated struct type beyond the
// caller-supplied DispatchFunc — the generated package (generated/demo,
// or whatever gen emits) is the only thing that imports both
// this package and its own record types.
package runtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dcoretech/dcore/cursor"
	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/errs"
)

// DispatchFunc resolves structIndex to a materialised, cache-stored
// value of its concrete generated type. ok is false only when structIndex
// is absent from the generated dispatch table entirely (generator/runtime
// drift the fingerprint check failed to catch); a recognised structIndex
// may still yield a nil value, e.g. an in-flight cycle, and that is not
// an error. err carries a read failure from the underlying
// GetOrReadInstance call (end of buffer, bad index, ...) — these are
// fatal for the current operation, so unlike the nil/ok=true cycle case
// they must propagate rather than be swallowed.
type DispatchFunc func(rt *Runtime, structIndex, instanceIndex int32) (value any, ok bool, err error)

// TypedRecord is the materialised root object of one main record, plus
// the bookkeeping fields a caller asked for by GUID or index.
type TypedRecord struct {
	FileName string
	Name     string
	ID       uuid.UUID
	Data     any
}

// Runtime owns a Database handle, a dispatch function, and two
// concurrent caches: the instance cache and the enum cache. Both are
// safe for concurrent use; the in-flight cycle-break set is per-goroutine
// (cache.go).
type Runtime struct {
	db       *database.Database
	dispatch DispatchFunc

	instanceCache sync.Map // uint64 instanceKey -> any
	enumCache     sync.Map // string "enumType\x00stringId" -> any

	inFlight inFlightTracker

	trace bool
}

// New returns a Runtime over db. dispatch is generated code's one seam
// into this package: given a struct/instance index pair, it must resolve
// and return the concrete generated value via that type's own
// GetOrReadInstance call, so the result ends up in the shared instance
// cache exactly once regardless of whether callers reach it through
// GetOrReadInstance[T] or GetOrReadInstancePolymorphic[T].
func New(db *database.Database, dispatch DispatchFunc) *Runtime {
	return &Runtime{db: db, dispatch: dispatch}
}

// Database returns the underlying parsed archive.
func (rt *Runtime) Database() *database.Database { return rt.db }

// ValidateSchema fails with SchemaMismatch if the archive's struct/enum
// counts or fingerprints disagree with what the generated code was built
// against.
func (rt *Runtime) ValidateSchema(expectedStructCount, expectedEnumCount int, expectedStructHash, expectedEnumHash uint64) error {
	gotStructs, gotEnums := rt.db.StructCount(), rt.db.EnumCount()
	gotStructFP, gotEnumFP := rt.db.StructFingerprint(), rt.db.EnumFingerprint()
	if gotStructs != expectedStructCount || gotEnums != expectedEnumCount ||
		gotStructFP != expectedStructHash || gotEnumFP != expectedEnumHash {
		return errors.Wrapf(errs.ErrSchemaMismatch,
			"archive has %d structs/%d enums, fingerprints %x/%x; generated code expects %d/%d, fingerprints %x/%x",
			gotStructs, gotEnums, gotStructFP, gotEnumFP,
			expectedStructCount, expectedEnumCount, expectedStructHash, expectedEnumHash)
	}
	return nil
}

// GetFromMainRecord materialises the root object of a main record via
// dispatch and pairs it with the record's identity fields.
func (rt *Runtime) GetFromMainRecord(rec database.MainRecord) (TypedRecord, error) {
	data, ok, err := rt.dispatch(rt, rec.StructIndex, rec.InstanceIndex)
	if err != nil {
		return TypedRecord{}, err
	}
	if !ok {
		return TypedRecord{}, errors.Wrapf(errs.ErrNullDispatch, "main record %s: struct %d not in dispatch table", rec.ID, rec.StructIndex)
	}
	sd, err := rt.db.Struct(rec.StructIndex)
	if err != nil {
		return TypedRecord{}, err
	}
	fileName, err := rt.db.ResolveString(rec.FileName)
	if err != nil {
		return TypedRecord{}, err
	}
	return TypedRecord{FileName: fileName, Name: sd.Name, ID: rec.ID, Data: data}, nil
}

// GetOrReadInstance is the cache-aware reader for a statically known
// concrete generated type T. Sentinel indices yield the zero value of T
// (generated record types are always pointers, so this is nil) with no
// error. On a cache hit, a wrong-type cast is a programming error and
// fails with TypeMismatch rather than panicking. On a miss, read is
// invoked with a cursor positioned at the instance's first byte; its
// result is cached after it returns — not before — so a property that
// re-enters this same key during its own construction misses the cache
// and instead trips the in-flight check below (the cycle case).
func GetOrReadInstance[T any](rt *Runtime, structIndex, instanceIndex int32, read func(rt *Runtime, c cursor.Cursor) (T, error)) (T, error) {
	var zero T
	if structIndex == database.NullIndex || instanceIndex == database.NullIndex {
		return zero, nil
	}
	key := instanceKey(structIndex, instanceIndex)

	if v, ok := rt.instanceCache.Load(key); ok {
		t, ok2 := v.(T)
		if !ok2 {
			return zero, errors.Wrapf(errs.ErrTypeMismatch, "struct %d instance %d", structIndex, instanceIndex)
		}
		return t, nil
	}

	if !rt.inFlight.enter(key) {
		rt.logCycleBreak(structIndex, instanceIndex)
		return zero, nil
	}
	defer rt.inFlight.exit(key)

	c, err := rt.db.GetReader(structIndex, instanceIndex)
	if err != nil {
		return zero, err
	}
	rt.traceRead(structIndex, instanceIndex)

	val, err := read(rt, c)
	if err != nil {
		return zero, err
	}

	actual, _ := rt.instanceCache.LoadOrStore(key, val)
	t, ok2 := actual.(T)
	if !ok2 {
		return zero, errors.Wrapf(errs.ErrTypeMismatch, "struct %d instance %d", structIndex, instanceIndex)
	}
	return t, nil
}

// GetOrReadInstancePolymorphic resolves structIndex's concrete type
// through dispatch rather than a statically supplied read function — the
// path reference and pointer resolution use, since the target's dynamic
// type may be any subtype of T. It shares the same instance cache
// dispatch itself writes into, so the cache/cycle bookkeeping lives in
// exactly one place: the GetOrReadInstance call the generated dispatch
// table entry makes for the concrete type.
func GetOrReadInstancePolymorphic[T any](rt *Runtime, structIndex, instanceIndex int32) (T, error) {
	var zero T
	if structIndex == database.NullIndex || instanceIndex == database.NullIndex {
		return zero, nil
	}
	key := instanceKey(structIndex, instanceIndex)
	if v, ok := rt.instanceCache.Load(key); ok {
		t, ok2 := v.(T)
		if !ok2 {
			return zero, errors.Wrapf(errs.ErrTypeMismatch, "struct %d instance %d", structIndex, instanceIndex)
		}
		return t, nil
	}

	val, ok, err := rt.dispatch(rt, structIndex, instanceIndex)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, errors.Wrapf(errs.ErrNullDispatch, "struct %d instance %d not in dispatch table", structIndex, instanceIndex)
	}
	if val == nil {
		return zero, nil
	}
	t, ok2 := val.(T)
	if !ok2 {
		return zero, errors.Wrapf(errs.ErrTypeMismatch, "struct %d instance %d", structIndex, instanceIndex)
	}
	return t, nil
}
