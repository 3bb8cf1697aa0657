package database

// Section identifies one of the archive's twelve fixed-order regions.
// One constant per region; each comment states what it holds and, where
// useful, the key/value shape, the way a storage layer documents one
// bucket per constant: section index and payload shape here, in place of
// bucket name and row shape there.
type Section int

const (
	// SectionStrings holds every String- and Locale-typed property's raw
	// UTF-8 bytes, addressed elsewhere by (offset, length) StringRefs.
	SectionStrings Section = iota

	// SectionStructs holds one StructDef per schema struct, in
	// declaration order. Declaration order is load-bearing: it is part
	// of what structFingerprint hashes, and instance regions
	// (SectionInstances) are keyed by the same struct index.
	SectionStructs

	// SectionProperties holds one PropertyDef per schema property,
	// addressed by StructDef.FirstPropertyIndex/PropertyCount ranges.
	SectionProperties

	// SectionEnums holds one EnumDef per schema enum, addressed by
	// PropertyDef.TargetIndex for EnumChoice properties.
	SectionEnums

	// SectionEnumOptions holds one EnumOption per enum value, addressed
	// by EnumDef.FirstOptionIndex/OptionCount ranges.
	SectionEnumOptions

	// SectionPrimitivePools holds one contiguous value pool per
	// DataType that array properties index into: the numeric/bool/GUID
	// primitives plus the String and Locale StringRef pools.
	SectionPrimitivePools

	// SectionEnumValuePool holds one StringRef per array slot of every
	// EnumChoice array property: one entry per array slot, not per
	// distinct enum value.
	SectionEnumValuePool

	// SectionReferencePool holds one GUID per array slot of every
	// Reference array property.
	SectionReferencePool

	// SectionStrongPointerPool holds one (structIndex, instanceIndex)
	// pair per array slot of every StrongPointer array property.
	SectionStrongPointerPool

	// SectionWeakPointerPool is the WeakPointer analogue of
	// SectionStrongPointerPool.
	SectionWeakPointerPool

	// SectionInstances holds, per struct index, a flat byte region of
	// that struct's instances back to back (stride = sum of the
	// struct's ancestor-chain property widths).
	SectionInstances

	// SectionMainRecords holds the GUID-addressable top-level record
	// index: (id, file name StringRef, struct index, instance index).
	SectionMainRecords

	sectionCount // not a real section; used to size the header table
)

// sectionDescriptor is the (offset, size) pair the header stores for one
// section, read in Section order.
type sectionDescriptor struct {
	Offset uint64
	Size   uint64
}
