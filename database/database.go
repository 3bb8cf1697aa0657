// Package database implements the binary database reader: it parses a
// DataCore archive into schema tables, value pools, instance byte
// storage, and the main-record index, and exposes a read-only,
// concurrency-safe view over all of it. Nothing here interprets property
// semantics beyond data type and width — that is the typed runtime's job
// (package runtime).
package database

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dcoretech/dcore/cursor"
	"github.com/dcoretech/dcore/errs"
	"github.com/dcoretech/dcore/numutil"
)

var magic = [4]byte{'D', 'C', 'O', 'R'}

// Database is the fully parsed, read-only archive. All accessor methods
// are safe to call concurrently from multiple goroutines: nothing here
// mutates state after Parse/Open returns.
type Database struct {
	raw []byte

	strings []byte

	structs     []StructDef
	properties  []PropertyDef
	enums       []EnumDef
	enumOptions []EnumOption

	pools Pools

	// instanceBase[s] / instanceCount[s] / instanceStride[s] describe the
	// flat byte region for struct index s: instanceBase[s] is an offset
	// into raw, instanceStride[s] is the per-instance byte width (own
	// properties plus every ancestor's), and instanceCount[s] is how many
	// instances that struct has.
	instanceBase   []int
	instanceCount  []int32
	instanceStride []int

	mainRecords []MainRecord
	mainByGUID  map[uuid.UUID]int

	structFP uint64
	enumFP   uint64
}

// OpenFile memory-maps path read-only and parses it as a DataCore
// archive. The returned close func unmaps the file; it must be called
// after the Database (and everything materialised from it) is no longer
// in use.
func OpenFile(path string) (db *Database, closeFn func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "datacore: open archive")
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "datacore: mmap archive")
	}
	db, err = Parse([]byte(m))
	if err != nil {
		_ = m.Unmap()
		return nil, nil, err
	}
	return db, m.Unmap, nil
}

// Parse builds a Database from an in-memory byte source. The returned
// Database retains data (no copy beyond what section parsing requires);
// the caller must keep data alive for as long as the Database is used.
func Parse(data []byte) (*Database, error) {
	c := cursor.New(data)

	var gotMagic [4]byte
	for i := range gotMagic {
		b, err := c.Uint8()
		if err != nil {
			return nil, errors.Wrap(err, "datacore: read magic")
		}
		gotMagic[i] = b
	}
	if gotMagic != magic {
		return nil, errors.Errorf("datacore: bad magic %q, want %q", gotMagic, magic)
	}
	if _, err := c.Uint32(); err != nil { // version, currently unused by the core
		return nil, errors.Wrap(err, "datacore: read version")
	}
	secCount, err := c.Uint32()
	if err != nil {
		return nil, errors.Wrap(err, "datacore: read section count")
	}
	if int(secCount) != int(sectionCount) {
		return nil, errors.Errorf("datacore: archive has %d sections, reader expects %d", secCount, sectionCount)
	}

	descs := make([]sectionDescriptor, secCount)
	for i := range descs {
		off, err := c.Uint64()
		if err != nil {
			return nil, errors.Wrapf(err, "datacore: read section %d offset", i)
		}
		size, err := c.Uint64()
		if err != nil {
			return nil, errors.Wrapf(err, "datacore: read section %d size", i)
		}
		descs[i] = sectionDescriptor{Offset: off, Size: size}
	}

	section := func(s Section) (cursor.Cursor, error) {
		d := descs[s]
		end, overflow := numutil.SafeAdd(d.Offset, d.Size)
		if overflow || end > uint64(len(data)) {
			return cursor.Cursor{}, errors.Wrapf(errs.ErrEndOfBuffer, "section %d out of bounds", s)
		}
		return cursor.At(data, int(d.Offset)), nil
	}

	db := &Database{raw: data}

	sc, err := section(SectionStrings)
	if err != nil {
		return nil, err
	}
	strLen, err := sc.Uint32()
	if err != nil {
		return nil, errors.Wrap(err, "datacore: read string pool length")
	}
	db.strings, err = sc.Bytes(int(strLen))
	if err != nil {
		return nil, errors.Wrap(err, "datacore: read string pool bytes")
	}

	if err := db.parseStructs(section); err != nil {
		return nil, err
	}
	if err := db.parseProperties(section); err != nil {
		return nil, err
	}
	if err := db.parseEnums(section); err != nil {
		return nil, err
	}
	if err := db.parseEnumOptions(section); err != nil {
		return nil, err
	}
	if err := db.parsePrimitivePools(section); err != nil {
		return nil, err
	}
	if err := db.parseEnumValuePool(section); err != nil {
		return nil, err
	}
	if err := db.parseReferencePool(section); err != nil {
		return nil, err
	}
	if err := db.parsePointerPool(section, SectionStrongPointerPool, &db.pools.StrongPointer); err != nil {
		return nil, err
	}
	if err := db.parsePointerPool(section, SectionWeakPointerPool, &db.pools.WeakPointer); err != nil {
		return nil, err
	}
	if err := db.computeStrides(); err != nil {
		return nil, err
	}
	if err := db.parseInstances(section); err != nil {
		return nil, err
	}
	if err := db.parseMainRecords(section); err != nil {
		return nil, err
	}

	db.structFP = structFingerprint(db.structs)
	db.enumFP = enumFingerprint(db.enums, db.enumOptions)

	return db, nil
}

func (db *Database) parseStructs(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionStructs)
	if err != nil {
		return err
	}
	count, err := c.Uint32()
	if err != nil {
		return errors.Wrap(err, "datacore: read struct count")
	}
	db.structs = make([]StructDef, count)
	for i := range db.structs {
		name, err := db.readStringRefInline(&c)
		if err != nil {
			return errors.Wrapf(err, "datacore: struct %d name", i)
		}
		parent, err := c.Int32()
		if err != nil {
			return err
		}
		firstProp, err := c.Int32()
		if err != nil {
			return err
		}
		propCount, err := c.Int32()
		if err != nil {
			return err
		}
		fp, err := c.Uint32()
		if err != nil {
			return err
		}
		db.structs[i] = StructDef{
			Name:                    name,
			ParentIndex:             parent,
			FirstPropertyIndex:      firstProp,
			PropertyCount:           propCount,
			FingerprintContribution: fp,
		}
	}
	return nil
}

func (db *Database) parseProperties(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionProperties)
	if err != nil {
		return err
	}
	count, err := c.Uint32()
	if err != nil {
		return errors.Wrap(err, "datacore: read property count")
	}
	db.properties = make([]PropertyDef, count)
	for i := range db.properties {
		name, err := db.readStringRefInline(&c)
		if err != nil {
			return err
		}
		dt, err := c.Uint8()
		if err != nil {
			return err
		}
		conv, err := c.Uint8()
		if err != nil {
			return err
		}
		if err := c.Advance(2); err != nil { // padding
			return err
		}
		target, err := c.Int32()
		if err != nil {
			return err
		}
		db.properties[i] = PropertyDef{
			Name:        name,
			DataType:    DataType(dt),
			Conversion:  Conversion(conv),
			TargetIndex: target,
		}
	}
	return nil
}

func (db *Database) parseEnums(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionEnums)
	if err != nil {
		return err
	}
	count, err := c.Uint32()
	if err != nil {
		return errors.Wrap(err, "datacore: read enum count")
	}
	db.enums = make([]EnumDef, count)
	for i := range db.enums {
		name, err := db.readStringRefInline(&c)
		if err != nil {
			return err
		}
		first, err := c.Int32()
		if err != nil {
			return err
		}
		n, err := c.Int32()
		if err != nil {
			return err
		}
		db.enums[i] = EnumDef{Name: name, FirstOptionIndex: first, OptionCount: n}
	}
	return nil
}

func (db *Database) parseEnumOptions(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionEnumOptions)
	if err != nil {
		return err
	}
	count, err := c.Uint32()
	if err != nil {
		return errors.Wrap(err, "datacore: read enum option count")
	}
	db.enumOptions = make([]EnumOption, count)
	for i := range db.enumOptions {
		off, err := c.Uint32()
		if err != nil {
			return err
		}
		length, err := c.Uint32()
		if err != nil {
			return err
		}
		db.enumOptions[i] = EnumOption{Name: StringRef{Offset: off, Length: length}}
	}
	return nil
}

func (db *Database) parsePrimitivePools(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionPrimitivePools)
	if err != nil {
		return err
	}

	readStrRefSlice := func() ([]StringRef, error) {
		n, err := c.Uint32()
		if err != nil {
			return nil, err
		}
		out := make([]StringRef, n)
		for i := range out {
			off, err := c.Uint32()
			if err != nil {
				return nil, err
			}
			ln, err := c.Uint32()
			if err != nil {
				return nil, err
			}
			out[i] = StringRef{Offset: off, Length: ln}
		}
		return out, nil
	}

	var n uint32
	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Bool = make([]bool, n)
	for i := range db.pools.Bool {
		v, err := c.Bool()
		if err != nil {
			return err
		}
		db.pools.Bool[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Int8 = make([]int8, n)
	for i := range db.pools.Int8 {
		v, err := c.Int8()
		if err != nil {
			return err
		}
		db.pools.Int8[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Uint8 = make([]uint8, n)
	for i := range db.pools.Uint8 {
		v, err := c.Uint8()
		if err != nil {
			return err
		}
		db.pools.Uint8[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Int16 = make([]int16, n)
	for i := range db.pools.Int16 {
		v, err := c.Int16()
		if err != nil {
			return err
		}
		db.pools.Int16[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Uint16 = make([]uint16, n)
	for i := range db.pools.Uint16 {
		v, err := c.Uint16()
		if err != nil {
			return err
		}
		db.pools.Uint16[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Int32 = make([]int32, n)
	for i := range db.pools.Int32 {
		v, err := c.Int32()
		if err != nil {
			return err
		}
		db.pools.Int32[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Uint32 = make([]uint32, n)
	for i := range db.pools.Uint32 {
		v, err := c.Uint32()
		if err != nil {
			return err
		}
		db.pools.Uint32[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Int64 = make([]int64, n)
	for i := range db.pools.Int64 {
		v, err := c.Int64()
		if err != nil {
			return err
		}
		db.pools.Int64[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Uint64 = make([]uint64, n)
	for i := range db.pools.Uint64 {
		v, err := c.Uint64()
		if err != nil {
			return err
		}
		db.pools.Uint64[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Single = make([]float32, n)
	for i := range db.pools.Single {
		v, err := c.Single()
		if err != nil {
			return err
		}
		db.pools.Single[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.Double = make([]float64, n)
	for i := range db.pools.Double {
		v, err := c.Double()
		if err != nil {
			return err
		}
		db.pools.Double[i] = v
	}

	if n, err = c.Uint32(); err != nil {
		return err
	}
	db.pools.GUID = make([]uuid.UUID, n)
	for i := range db.pools.GUID {
		v, err := c.GUID()
		if err != nil {
			return err
		}
		db.pools.GUID[i] = v
	}

	if db.pools.String, err = readStrRefSlice(); err != nil {
		return err
	}
	if db.pools.Locale, err = readStrRefSlice(); err != nil {
		return err
	}
	return nil
}

func (db *Database) parseEnumValuePool(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionEnumValuePool)
	if err != nil {
		return err
	}
	n, err := c.Uint32()
	if err != nil {
		return err
	}
	db.pools.EnumValue = make([]StringRef, n)
	for i := range db.pools.EnumValue {
		off, err := c.Uint32()
		if err != nil {
			return err
		}
		ln, err := c.Uint32()
		if err != nil {
			return err
		}
		db.pools.EnumValue[i] = StringRef{Offset: off, Length: ln}
	}
	return nil
}

func (db *Database) parseReferencePool(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionReferencePool)
	if err != nil {
		return err
	}
	n, err := c.Uint32()
	if err != nil {
		return err
	}
	db.pools.Reference = make([]uuid.UUID, n)
	for i := range db.pools.Reference {
		v, err := c.GUID()
		if err != nil {
			return err
		}
		db.pools.Reference[i] = v
	}
	return nil
}

func (db *Database) parsePointerPool(section func(Section) (cursor.Cursor, error), s Section, out *[]PointerEntry) error {
	c, err := section(s)
	if err != nil {
		return err
	}
	n, err := c.Uint32()
	if err != nil {
		return err
	}
	entries := make([]PointerEntry, n)
	for i := range entries {
		si, err := c.Int32()
		if err != nil {
			return err
		}
		ii, err := c.Int32()
		if err != nil {
			return err
		}
		entries[i] = PointerEntry{StructIndex: si, InstanceIndex: ii}
	}
	*out = entries
	return nil
}

// computeStrides resolves the byte stride of every struct: the sum of its
// ancestor chain's property widths followed by its own, base-to-derived.
// Class-typed scalar properties recurse into the target struct's own
// stride.
func (db *Database) computeStrides() error {
	db.instanceStride = make([]int, len(db.structs))
	resolved := make([]bool, len(db.structs))
	resolving := make([]bool, len(db.structs))

	var resolve func(idx int32) (int, error)
	resolve = func(idx int32) (int, error) {
		if idx == NullIndex {
			return 0, nil
		}
		if int(idx) < 0 || int(idx) >= len(db.structs) {
			return 0, errors.Wrapf(errs.ErrBadIndex, "struct index %d", idx)
		}
		if resolved[idx] {
			return db.instanceStride[idx], nil
		}
		if resolving[idx] {
			return 0, errors.Errorf("datacore: cyclic struct parent chain at struct %d", idx)
		}
		resolving[idx] = true
		defer func() { resolving[idx] = false }()

		s := db.structs[idx]
		parentWidth, err := resolve(s.ParentIndex)
		if err != nil {
			return 0, err
		}
		width := parentWidth
		for p := s.FirstPropertyIndex; p < s.FirstPropertyIndex+s.PropertyCount; p++ {
			if int(p) < 0 || int(p) >= len(db.properties) {
				return 0, errors.Wrapf(errs.ErrBadIndex, "property index %d", p)
			}
			prop := db.properties[p]
			if prop.Conversion == Array {
				width += arrayHeaderWidth
				continue
			}
			if prop.DataType == Class {
				targetWidth, err := resolve(prop.TargetIndex)
				if err != nil {
					return 0, err
				}
				width += targetWidth
				continue
			}
			width += scalarWidth(prop.DataType)
		}
		db.instanceStride[idx] = width
		resolved[idx] = true
		return width, nil
	}

	for i := range db.structs {
		if _, err := resolve(int32(i)); err != nil {
			return err
		}
	}
	return nil
}

func (db *Database) parseInstances(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionInstances)
	if err != nil {
		return err
	}
	structCount, err := c.Uint32()
	if err != nil {
		return err
	}
	if int(structCount) != len(db.structs) {
		return errors.Errorf("datacore: instance section has %d structs, schema has %d", structCount, len(db.structs))
	}
	db.instanceBase = make([]int, structCount)
	db.instanceCount = make([]int32, structCount)
	for i := 0; i < int(structCount); i++ {
		n, err := c.Uint32()
		if err != nil {
			return err
		}
		db.instanceCount[i] = int32(n)
		stride := db.instanceStride[i]
		regionSize, overflow := numutil.SafeMul(uint64(n), uint64(stride))
		if overflow || !numutil.InRangeU32(regionSize) {
			return errors.Wrapf(errs.ErrBadIndex, "datacore: instance region for struct %d: %d instances * %d-byte stride overflows", i, n, stride)
		}
		b, err := c.Bytes(int(regionSize))
		if err != nil {
			return errors.Wrapf(err, "datacore: instance region for struct %d", i)
		}
		// Record an absolute offset into raw so GetReader can hand out a
		// Cursor over the shared backing array positioned at the instance.
		db.instanceBase[i] = offsetOf(db.raw, b)
	}
	return nil
}

func (db *Database) parseMainRecords(section func(Section) (cursor.Cursor, error)) error {
	c, err := section(SectionMainRecords)
	if err != nil {
		return err
	}
	n, err := c.Uint32()
	if err != nil {
		return err
	}
	db.mainRecords = make([]MainRecord, n)
	db.mainByGUID = make(map[uuid.UUID]int, n)
	for i := range db.mainRecords {
		id, err := c.GUID()
		if err != nil {
			return err
		}
		nameOff, err := c.Uint32()
		if err != nil {
			return err
		}
		nameLen, err := c.Uint32()
		if err != nil {
			return err
		}
		structIdx, err := c.Int32()
		if err != nil {
			return err
		}
		instIdx, err := c.Int32()
		if err != nil {
			return err
		}
		rec := MainRecord{
			ID:            id,
			FileName:      StringRef{Offset: nameOff, Length: nameLen},
			StructIndex:   structIdx,
			InstanceIndex: instIdx,
		}
		db.mainRecords[i] = rec
		db.mainByGUID[id] = i
	}
	return nil
}

// readStringRefInline reads an inline (offset, length) pair and resolves
// it against the string pool immediately — used for schema metadata
// (names), which callers always want as Go strings rather than lazy refs.
func (db *Database) readStringRefInline(c *cursor.Cursor) (string, error) {
	off, err := c.Uint32()
	if err != nil {
		return "", err
	}
	length, err := c.Uint32()
	if err != nil {
		return "", err
	}
	return db.ResolveString(StringRef{Offset: off, Length: length})
}

// ResolveString returns the UTF-8 text a StringRef points to.
func (db *Database) ResolveString(ref StringRef) (string, error) {
	end := uint64(ref.Offset) + uint64(ref.Length)
	if end > uint64(len(db.strings)) {
		return "", errors.Wrapf(errs.ErrEndOfBuffer, "string ref %+v out of bounds (pool len %d)", ref, len(db.strings))
	}
	return string(db.strings[ref.Offset:end]), nil
}

// offsetOf computes sub's start offset within raw via the capacity
// trick: slicing only moves the lower bound, so cap(raw)-cap(sub) is
// exactly how far in sub starts. Both must share the same backing array,
// which is always true here since every Cursor in this package is built
// directly over db.raw.
func offsetOf(raw, sub []byte) int {
	return cap(raw) - cap(sub)
}

// StructCount returns the number of struct definitions in the schema.
func (db *Database) StructCount() int { return len(db.structs) }

// EnumCount returns the number of enum definitions in the schema.
func (db *Database) EnumCount() int { return len(db.enums) }

// StructFingerprint returns the stable hash of the struct table.
func (db *Database) StructFingerprint() uint64 { return db.structFP }

// EnumFingerprint returns the stable hash of the enum table.
func (db *Database) EnumFingerprint() uint64 { return db.enumFP }

// Struct returns the schema definition for struct index idx.
func (db *Database) Struct(idx int32) (StructDef, error) {
	if idx < 0 || int(idx) >= len(db.structs) {
		return StructDef{}, errors.Wrapf(errs.ErrBadIndex, "struct %d", idx)
	}
	return db.structs[idx], nil
}

// Property returns the schema definition for property index idx.
func (db *Database) Property(idx int32) (PropertyDef, error) {
	if idx < 0 || int(idx) >= len(db.properties) {
		return PropertyDef{}, errors.Wrapf(errs.ErrBadIndex, "property %d", idx)
	}
	return db.properties[idx], nil
}

// Enum returns the schema definition for enum index idx.
func (db *Database) Enum(idx int32) (EnumDef, error) {
	if idx < 0 || int(idx) >= len(db.enums) {
		return EnumDef{}, errors.Wrapf(errs.ErrBadIndex, "enum %d", idx)
	}
	return db.enums[idx], nil
}

// EnumOption returns the option at idx in the enum-option table.
func (db *Database) EnumOption(idx int32) (EnumOption, error) {
	if idx < 0 || int(idx) >= len(db.enumOptions) {
		return EnumOption{}, errors.Wrapf(errs.ErrBadIndex, "enum option %d", idx)
	}
	return db.enumOptions[idx], nil
}

// Pools returns a read-only view of every value pool.
func (db *Database) Pools() *Pools { return &db.pools }

// InstanceCount returns how many instances struct idx has.
func (db *Database) InstanceCount(idx int32) (int32, error) {
	if idx < 0 || int(idx) >= len(db.instanceCount) {
		return 0, errors.Wrapf(errs.ErrBadIndex, "struct %d", idx)
	}
	return db.instanceCount[idx], nil
}

// GetReader returns a Cursor positioned at instance instIdx of struct
// structIdx, ready to be read by that struct's generated Read function.
func (db *Database) GetReader(structIdx, instIdx int32) (cursor.Cursor, error) {
	if structIdx < 0 || int(structIdx) >= len(db.structs) {
		return cursor.Cursor{}, errors.Wrapf(errs.ErrBadIndex, "struct %d", structIdx)
	}
	if instIdx < 0 || instIdx >= db.instanceCount[structIdx] {
		return cursor.Cursor{}, errors.Wrapf(errs.ErrBadIndex, "struct %d instance %d", structIdx, instIdx)
	}
	stride := db.instanceStride[structIdx]
	base := db.instanceBase[structIdx] + int(instIdx)*stride
	return cursor.At(db.raw, base), nil
}

// GetRecord looks up a main record by its GUID.
func (db *Database) GetRecord(id uuid.UUID) (MainRecord, error) {
	i, ok := db.mainByGUID[id]
	if !ok {
		return MainRecord{}, errors.Wrapf(errs.ErrUnknownRecord, "guid %s", id)
	}
	return db.mainRecords[i], nil
}

// GetRecordByIndex returns the i'th entry of the main-record index.
func (db *Database) GetRecordByIndex(i int) (MainRecord, error) {
	if i < 0 || i >= len(db.mainRecords) {
		return MainRecord{}, errors.Wrapf(errs.ErrBadIndex, "main record %d", i)
	}
	return db.mainRecords[i], nil
}

// MainRecordCount returns the number of entries in the main-record index.
func (db *Database) MainRecordCount() int { return len(db.mainRecords) }

// RecordInfo is the resolved shape of a GUID found in the main-record
// index — the single entry point reference resolution goes through.
type RecordInfo struct {
	StructIndex      int32
	InstanceIndex    int32
	IsMain           bool
	FileNameOffset   StringRef
	HasFileName      bool
}

// TryGetRecordInfo resolves a GUID against the main-record index. It
// returns ok=false rather than an error when the GUID is unknown: an
// unresolved reference recovers locally, its LazyRef's Value yielding the
// zero value rather than a propagated error.
func (db *Database) TryGetRecordInfo(id uuid.UUID) (RecordInfo, bool) {
	i, ok := db.mainByGUID[id]
	if !ok {
		return RecordInfo{}, false
	}
	rec := db.mainRecords[i]
	return RecordInfo{
		StructIndex:    rec.StructIndex,
		InstanceIndex:  rec.InstanceIndex,
		IsMain:         true,
		FileNameOffset: rec.FileName,
		HasFileName:    true,
	}, true
}

// SectionSizes returns the byte size of every section, keyed by Section
// (a supplemented diagnostic, SPEC_FULL.md §3).
func (db *Database) SectionSizes() map[Section]int {
	// Read back from the header's descriptor table, which starts after
	// magic(4) + version(4) + section count(4) and was validated by Parse.
	out := make(map[Section]int, sectionCount)
	c := cursor.At(db.raw, 12)
	for s := Section(0); s < sectionCount; s++ {
		if _, err := c.Uint64(); err != nil { // offset
			break
		}
		size, err := c.Uint64()
		if err != nil {
			break
		}
		out[s] = int(size)
	}
	return out
}
