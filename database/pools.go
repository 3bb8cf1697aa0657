package database

import "github.com/google/uuid"

// PointerEntry is one element of the strong- or weak-pointer pool: an
// already-resolved (structIndex, instanceIndex) pair. A scalar pointer
// property stores the identical pair inline in its instance bytes — see
// DESIGN.md for why the two widths agree by construction, since both
// read the same PointerEntry shape.
type PointerEntry struct {
	StructIndex   int32
	InstanceIndex int32
}

// Pools holds every value pool an array property can index into: one
// slice per primitive DataType, plus the enum-value, reference, and
// pointer pools. All are read-only once the Database is constructed.
type Pools struct {
	Bool   []bool
	Int8   []int8
	Uint8  []uint8
	Int16  []int16
	Uint16 []uint16
	Int32  []int32
	Uint32 []uint32
	Int64  []int64
	Uint64 []uint64
	Single []float32
	Double []float64
	GUID   []uuid.UUID
	String []StringRef
	Locale []StringRef

	EnumValue []StringRef
	Reference []uuid.UUID

	StrongPointer []PointerEntry
	WeakPointer   []PointerEntry
}
