package runtime

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dcoretech/dcore/cursor"
	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/errs"
	"github.com/dcoretech/dcore/numutil"
)

// readArrayHeader reads an array property's inline (count, firstIndex)
// pair from c, advancing it, and bounds-checks the pair against poolLen:
// firstIndex + count must not exceed the pool's length. An empty array is
// valid independent of firstIndex, so the bounds check is skipped when
// count is zero. count and first come straight from archive bytes, so
// both a negative count and an overflowing sum are rejected rather than
// trusted — a negative count would otherwise reach make([]T, count) and
// panic.
func readArrayHeader(c *cursor.Cursor, poolLen int) (count, first int32, err error) {
	count, err = c.Int32()
	if err != nil {
		return 0, 0, err
	}
	first, err = c.Int32()
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, first, nil
	}
	if count < 0 || first < 0 {
		return 0, 0, errors.Wrapf(errs.ErrBadIndex, "array header (first=%d, count=%d) has a negative field", first, count)
	}
	end, overflow := numutil.SafeAdd(uint64(first), uint64(count))
	if overflow || end > uint64(poolLen) {
		return 0, 0, errors.Wrapf(errs.ErrBadIndex, "array header (first=%d, count=%d) exceeds pool length %d", first, count, poolLen)
	}
	return count, first, nil
}

// ReadBoolArray reads a Bool array property from c against pool.
func ReadBoolArray(c *cursor.Cursor, pool []bool) ([]bool, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]bool, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadInt8Array reads an Int8 array property from c against pool.
func ReadInt8Array(c *cursor.Cursor, pool []int8) ([]int8, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]int8, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadUint8Array reads a Uint8 array property from c against pool.
func ReadUint8Array(c *cursor.Cursor, pool []uint8) ([]uint8, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]uint8, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadInt16Array reads an Int16 array property from c against pool.
func ReadInt16Array(c *cursor.Cursor, pool []int16) ([]int16, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]int16, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadUint16Array reads a Uint16 array property from c against pool.
func ReadUint16Array(c *cursor.Cursor, pool []uint16) ([]uint16, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadInt32Array reads an Int32 array property from c against pool.
func ReadInt32Array(c *cursor.Cursor, pool []int32) ([]int32, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadUint32Array reads a Uint32 array property from c against pool.
func ReadUint32Array(c *cursor.Cursor, pool []uint32) ([]uint32, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadInt64Array reads an Int64 array property from c against pool.
func ReadInt64Array(c *cursor.Cursor, pool []int64) ([]int64, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]int64, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadUint64Array reads a Uint64 array property from c against pool.
func ReadUint64Array(c *cursor.Cursor, pool []uint64) ([]uint64, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]uint64, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadSingleArray reads a Single array property from c against pool.
func ReadSingleArray(c *cursor.Cursor, pool []float32) ([]float32, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadDoubleArray reads a Double array property from c against pool.
func ReadDoubleArray(c *cursor.Cursor, pool []float64) ([]float64, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadGUIDArray reads a GUID array property from c against pool.
func ReadGUIDArray(c *cursor.Cursor, pool []uuid.UUID) ([]uuid.UUID, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, count)
	copy(out, pool[first:first+count])
	return out, nil
}

// ReadStringArray reads a String array property from c, resolving every
// element of the String pool slice against the archive's string pool.
func ReadStringArray(rt *Runtime, c *cursor.Cursor, pool []database.StringRef) ([]string, error) {
	return readStringRefArray(rt, c, pool)
}

// ReadLocaleArray reads a Locale array property from c, resolving every
// element of the Locale pool slice against the archive's string pool.
func ReadLocaleArray(rt *Runtime, c *cursor.Cursor, pool []database.StringRef) ([]string, error) {
	return readStringRefArray(rt, c, pool)
}

func readStringRefArray(rt *Runtime, c *cursor.Cursor, pool []database.StringRef) ([]string, error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := int32(0); i < count; i++ {
		s, err := rt.db.ResolveString(pool[first+i])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// ReadEnumArray reads an EnumChoice array property: each slot in the
// enum-value pool is a string identifier, parsed through EnumParse the
// same way a scalar enum property is.
func ReadEnumArray[T any](rt *Runtime, c *cursor.Cursor, enumTypeName string, lookup map[string]T, fallback T) ([]T, error) {
	pool := rt.db.Pools().EnumValue
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]T, count)
	for i := int32(0); i < count; i++ {
		s, err := rt.db.ResolveString(pool[first+i])
		if err != nil {
			return nil, err
		}
		out[i] = EnumParse(rt, enumTypeName, s, lookup, fallback)
	}
	return out, nil
}

// ReadReferenceArray reads a Reference array property: each slot in the
// reference pool is a GUID, wrapped (not resolved) as a LazyRef.
func ReadReferenceArray[T any](rt *Runtime, c *cursor.Cursor) ([]*LazyRef[T], error) {
	pool := rt.db.Pools().Reference
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]*LazyRef[T], count)
	for i := int32(0); i < count; i++ {
		out[i] = NewReferenceRef[T](rt, pool[first+i])
	}
	return out, nil
}

// ReadPointerArray reads a strong- or weak-pointer array property: each
// slot in pool is an already-resolved (structIndex, instanceIndex) pair,
// wrapped (not resolved) as a LazyRef. Callers pass
// rt.Database().Pools().StrongPointer or .WeakPointer.
func ReadPointerArray[T any](rt *Runtime, c *cursor.Cursor, pool []database.PointerEntry) ([]*LazyRef[T], error) {
	count, first, err := readArrayHeader(c, len(pool))
	if err != nil {
		return nil, err
	}
	out := make([]*LazyRef[T], count)
	for i := int32(0); i < count; i++ {
		e := pool[first+i]
		out[i] = NewPointerRef[T](rt, e.StructIndex, e.InstanceIndex)
	}
	return out, nil
}

// ReadClassArray reads an array-of-embedded-struct property: (count,
// firstIndex) addresses consecutive instances of targetStructIndex's own
// instance region. Each element goes through the same cache as any other
// materialisation of that struct/instance pair.
func ReadClassArray[T any](rt *Runtime, c *cursor.Cursor, targetStructIndex int32, targetInstanceCount int32, read func(rt *Runtime, c cursor.Cursor) (T, error)) ([]T, error) {
	count, first, err := readArrayHeader(c, int(targetInstanceCount))
	if err != nil {
		return nil, err
	}
	out := make([]T, count)
	for i := int32(0); i < count; i++ {
		v, err := GetOrReadInstance(rt, targetStructIndex, first+i, read)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
