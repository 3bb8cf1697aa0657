package database

// DataType tags a property's on-disk representation. The const block
// below groups related on-disk shapes under one comment, the same way a
// storage layer's bucket-name table groups related keyspaces — here each
// group is one family of on-disk shapes rather than one key range.
type DataType uint8

const (
	// Scalar numeric and boolean primitives. Each has its own value pool
	// (DataType) for array properties; a scalar property of these types
	// stores its value inline in the instance bytes.
	Bool DataType = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Single
	Double

	// GUID is a 16-byte record identifier, pool-backed like the numeric
	// primitives above.
	GUID

	// String and Locale are both (offset, length) pointers into the raw
	// string-pool bytes. Locale is a distinct DataType, and hence a
	// different array value pool, but shares the same underlying text
	// bytes as String.
	String
	Locale

	// EnumChoice properties store a string identifier (the option's
	// name), resolved through enumParse rather than an inline index —
	// this is what lets the archive and the generated enum type drift
	// without invalidating every enum-valued record.
	EnumChoice

	// Class is an embedded struct: scalar class properties are read
	// in place (same cursor, no instance-cache entry of their own);
	// array class properties index consecutive instances of the target
	// struct's own instance region.
	Class

	// Reference is a GUID-keyed link to any main record, resolved lazily
	// through the main-record index on first access.
	Reference

	// StrongPointer and WeakPointer are already-resolved (structIndex,
	// instanceIndex) links. The distinction between them is advisory
	// (ownership) only; the reader treats both identically.
	StrongPointer
	WeakPointer
)

func (d DataType) String() string {
	switch d {
	case Bool:
		return "Bool"
	case Int8:
		return "Int8"
	case Uint8:
		return "Uint8"
	case Int16:
		return "Int16"
	case Uint16:
		return "Uint16"
	case Int32:
		return "Int32"
	case Uint32:
		return "Uint32"
	case Int64:
		return "Int64"
	case Uint64:
		return "Uint64"
	case Single:
		return "Single"
	case Double:
		return "Double"
	case GUID:
		return "GUID"
	case String:
		return "String"
	case Locale:
		return "Locale"
	case EnumChoice:
		return "EnumChoice"
	case Class:
		return "Class"
	case Reference:
		return "Reference"
	case StrongPointer:
		return "StrongPointer"
	case WeakPointer:
		return "WeakPointer"
	default:
		return "Unknown"
	}
}

// Conversion distinguishes a scalar property (one inline value) from an
// array property ((count, firstIndex) into the matching value pool).
type Conversion uint8

const (
	Scalar Conversion = iota
	Array
)

// NullIndex is the sentinel stored for an absent struct or instance
// index anywhere in the archive.
const NullIndex int32 = -1

// scalarWidth returns the number of bytes a scalar property of the given
// data type occupies inline in an instance's byte region. It is not valid
// to call this for Class (the width is the target struct's stride, which
// depends on schema resolution — see Database.computeStrides) or for any
// array property (always 8 bytes: a uint32 count plus a uint32
// firstIndex, regardless of element type).
func scalarWidth(d DataType) int {
	switch d {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Single:
		return 4
	case Int64, Uint64, Double:
		return 8
	case GUID:
		return 16
	case String, Locale, EnumChoice:
		return 8 // inline StringRef: uint32 offset + uint32 length
	case Reference:
		return 20 // GUID (16) + instance index (int32, 4)
	case StrongPointer, WeakPointer:
		return 8 // struct index (int32) + instance index (int32)
	default:
		return 0
	}
}

// arrayHeaderWidth is the width of an array property's inline (count,
// firstIndex) pair, independent of element data type.
const arrayHeaderWidth = 8

// ScalarWidth exports scalarWidth for callers outside this package that
// need to lay out instance bytes by hand (archive builders, tests). It is
// not valid for Class, whose width depends on schema resolution.
func ScalarWidth(d DataType) int { return scalarWidth(d) }

// ArrayHeaderWidth exports arrayHeaderWidth: every array property's
// inline (count, firstIndex) pair is this many bytes, regardless of
// element type.
func ArrayHeaderWidth() int { return arrayHeaderWidth }
