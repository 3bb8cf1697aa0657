package database

// StringRef is an (offset, length) pointer into the raw string-pool bytes
// (section SectionStrings), used for both String and Locale payloads —
// they share this representation.
type StringRef struct {
	Offset uint32
	Length uint32
}

// StructDef is one schema struct: name, optional parent (single
// inheritance), and the range of its own properties in the property
// table. On disk it also carries a fingerprint contribution, folded into
// structFingerprint in declaration order (see fingerprint.go).
type StructDef struct {
	Name                 string
	ParentIndex           int32 // NullIndex if this struct has no parent
	FirstPropertyIndex    int32
	PropertyCount         int32
	FingerprintContribution uint32
}

// HasParent reports whether this struct has an ancestor.
func (s StructDef) HasParent() bool { return s.ParentIndex != NullIndex }

// PropertyDef is one property of a struct: its name, on-disk shape
// (DataType + Conversion), and a target index whose meaning depends on
// DataType (struct index for Class/Reference/Pointer-typed properties,
// enum index for EnumChoice, unused otherwise).
type PropertyDef struct {
	Name       string
	DataType   DataType
	Conversion Conversion
	TargetIndex int32
}

// EnumDef is one schema enum: name and the range of its options in the
// enum-option table.
type EnumDef struct {
	Name             string
	FirstOptionIndex int32
	OptionCount      int32
}

// EnumOption is one named value of an enum, identified by a string in the
// string pool (matched by enumParse against the archive's on-disk text,
// not by its ordinal position — this is what tolerates enums gaining or
// losing options across schema versions).
type EnumOption struct {
	Name StringRef
}
