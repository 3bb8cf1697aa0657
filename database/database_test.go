package database_test

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/internal/archivebuilder"
)

// TestPureScalar covers a struct with only inline numeric properties, no
// inheritance, no references.
func TestPureScalar(t *testing.T) {
	b := archivebuilder.New()
	point := b.AddStruct("Point", database.NullIndex)
	b.AddProperty(point, "X", database.Int32, database.Scalar, database.NullIndex)
	b.AddProperty(point, "Y", database.Int32, database.Scalar, database.NullIndex)

	raw := archivebuilder.NewInstanceEncoder().Int32(3).Int32(-4).Bytes()
	instIdx := b.AddInstance(point, raw)

	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b.AddMainRecord(id, "point.xml", point, instIdx)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	require.Equal(t, 1, db.StructCount())
	sd, err := db.Struct(point)
	require.NoError(t, err)
	require.Equal(t, "Point", sd.Name)
	require.False(t, sd.HasParent())

	rec, err := db.GetRecord(id)
	require.NoError(t, err)
	require.Equal(t, point, rec.StructIndex)
	require.Equal(t, instIdx, rec.InstanceIndex)

	name, err := db.ResolveString(rec.FileName)
	require.NoError(t, err)
	require.Equal(t, "point.xml", name)

	c, err := db.GetReader(point, instIdx)
	require.NoError(t, err)
	x, err := c.Int32()
	require.NoError(t, err)
	y, err := c.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(3), x)
	require.Equal(t, int32(-4), y)
}

// TestInheritance covers a derived struct's stride including its base's
// properties, base-to-derived order.
func TestInheritance(t *testing.T) {
	b := archivebuilder.New()
	base := b.AddStruct("Base", database.NullIndex)
	b.AddProperty(base, "ID", database.Int32, database.Scalar, database.NullIndex)

	derived := b.AddStruct("Derived", base)
	b.AddProperty(derived, "Extra", database.Single, database.Scalar, database.NullIndex)

	raw := archivebuilder.NewInstanceEncoder().Int32(42).Single(1.5).Bytes()
	instIdx := b.AddInstance(derived, raw)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	sd, err := db.Struct(derived)
	require.NoError(t, err)
	require.True(t, sd.HasParent())
	require.Equal(t, base, sd.ParentIndex)

	c, err := db.GetReader(derived, instIdx)
	require.NoError(t, err)
	id, err := c.Int32()
	require.NoError(t, err)
	extra, err := c.Single()
	require.NoError(t, err)
	require.Equal(t, int32(42), id)
	require.InDelta(t, 1.5, extra, 1e-9)
}

// TestCycleStrideResolution covers the schema level of a self-referencing
// struct: a struct whose only reference to itself is a pointer property
// (not a Class-embedding cycle, which would be a genuine schema error)
// resolves a finite stride without infinite recursion.
func TestCycleStrideResolution(t *testing.T) {
	b := archivebuilder.New()
	node := b.AddStruct("Node", database.NullIndex)
	b.AddProperty(node, "Value", database.Int32, database.Scalar, database.NullIndex)
	b.AddProperty(node, "Next", database.StrongPointer, database.Scalar, node)

	raw := archivebuilder.NewInstanceEncoder().Int32(7).Pointer(node, 0).Bytes()
	instIdx := b.AddInstance(node, raw)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	c, err := db.GetReader(node, instIdx)
	require.NoError(t, err)
	v, err := c.Int32()
	require.NoError(t, err)
	structIdx, err := c.Int32()
	require.NoError(t, err)
	ptrInstIdx, err := c.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(7), v)
	require.Equal(t, node, structIdx)
	require.Equal(t, int32(0), ptrInstIdx)
}

// TestArrayOfClasses covers an array of embedded structs: Bag holds an
// array of Item, each Item's own instance region indexed from Bag's
// instance bytes via a (count, firstIndex) header.
func TestArrayOfClasses(t *testing.T) {
	b := archivebuilder.New()
	item := b.AddStruct("Item", database.NullIndex)
	b.AddProperty(item, "Weight", database.Int32, database.Scalar, database.NullIndex)

	bag := b.AddStruct("Bag", database.NullIndex)
	b.AddProperty(bag, "Items", database.Class, database.Array, item)

	item0 := b.AddInstance(item, archivebuilder.NewInstanceEncoder().Int32(10).Bytes())
	item1 := b.AddInstance(item, archivebuilder.NewInstanceEncoder().Int32(20).Bytes())
	require.Equal(t, int32(0), item0)
	require.Equal(t, int32(1), item1)

	bagRaw := archivebuilder.NewInstanceEncoder().ArrayHeader(2, 0).Bytes()
	bagInst := b.AddInstance(bag, bagRaw)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	c, err := db.GetReader(bag, bagInst)
	require.NoError(t, err)
	count, err := c.Int32()
	require.NoError(t, err)
	first, err := c.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(2), count)
	require.Equal(t, int32(0), first)

	for i := int32(0); i < count; i++ {
		ic, err := db.GetReader(item, first+i)
		require.NoError(t, err)
		w, err := ic.Int32()
		require.NoError(t, err)
		require.Equal(t, int32(10)*(i+1), w)
	}
}

// TestEnumTableAndUnknownOption covers the schema-level half of an
// enum-parse-miss: the enum table round-trips, and an EnumChoice
// property's inline value is just a StringRef, so an option name absent
// from the enum's own option table parses fine at this layer (the
// Unknown fallback is the typed runtime's concern, not the database's).
func TestEnumTableAndUnknownOption(t *testing.T) {
	b := archivebuilder.New()
	colorEnum := b.AddEnum("Color")
	b.AddEnumOption(colorEnum, "Red")
	b.AddEnumOption(colorEnum, "Green")

	widget := b.AddStruct("Widget", database.NullIndex)
	b.AddProperty(widget, "Tint", database.EnumChoice, database.Scalar, colorEnum)

	notInTable := b.WriteString("Ultraviolet")
	raw := archivebuilder.NewInstanceEncoder().StringRef(notInTable.Offset, notInTable.Length).Bytes()
	instIdx := b.AddInstance(widget, raw)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	ed, err := db.Enum(colorEnum)
	require.NoError(t, err)
	require.Equal(t, "Color", ed.Name)
	require.Equal(t, int32(2), ed.OptionCount)

	opt0, err := db.EnumOption(ed.FirstOptionIndex)
	require.NoError(t, err)
	name0, err := db.ResolveString(opt0.Name)
	require.NoError(t, err)
	require.Equal(t, "Red", name0)

	c, err := db.GetReader(widget, instIdx)
	require.NoError(t, err)
	off, err := c.Uint32()
	require.NoError(t, err)
	length, err := c.Uint32()
	require.NoError(t, err)
	value, err := db.ResolveString(database.StringRef{Offset: off, Length: length})
	require.NoError(t, err)
	require.Equal(t, "Ultraviolet", value)
}

// TestFingerprintsDiffer covers fingerprint sensitivity: reordering
// struct declarations changes StructFingerprint, and adding an enum
// option changes EnumFingerprint, even though neither changes any value
// pool.
func TestFingerprintsDiffer(t *testing.T) {
	build := func(firstName, secondName string) uint64 {
		b := archivebuilder.New()
		first := b.AddStruct(firstName, database.NullIndex)
		b.AddProperty(first, "A", database.Int32, database.Scalar, database.NullIndex)
		second := b.AddStruct(secondName, database.NullIndex)
		b.AddProperty(second, "B", database.Int32, database.Scalar, database.NullIndex)
		db, err := database.Parse(b.Build())
		require.NoError(t, err)
		return db.StructFingerprint()
	}

	fpAB := build("Alpha", "Beta")
	fpBA := build("Beta", "Alpha")
	require.NotEqual(t, fpAB, fpBA, "reordering structs must change the struct fingerprint")

	buildEnum := func(options ...string) uint64 {
		b := archivebuilder.New()
		e := b.AddEnum("E")
		for _, o := range options {
			b.AddEnumOption(e, o)
		}
		db, err := database.Parse(b.Build())
		require.NoError(t, err)
		return db.EnumFingerprint()
	}

	fpTwo := buildEnum("Red", "Green")
	fpThree := buildEnum("Red", "Green", "Blue")
	require.NotEqual(t, fpTwo, fpThree, "adding an enum option must change the enum fingerprint")
}

// TestUnknownRecordRecoversLocally covers unknown-record recovery:
// TryGetRecordInfo reports ok=false rather than erroring.
func TestUnknownRecordRecoversLocally(t *testing.T) {
	b := archivebuilder.New()
	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	_, ok := db.TryGetRecordInfo(uuid.New())
	require.False(t, ok)

	_, err = db.GetRecord(uuid.New())
	require.Error(t, err)
}

// TestBadMagicRejected exercises the SchemaMismatch-adjacent guard at
// the file-format level: corrupting the magic bytes fails Parse.
func TestBadMagicRejected(t *testing.T) {
	b := archivebuilder.New()
	raw := b.Build()
	raw[0] = 'X'
	_, err := database.Parse(raw)
	require.Error(t, err)
}

// TestCorruptInstanceCountRejected patches a single struct's instance
// count in the raw archive to a value whose byte-region size (count *
// stride) can no longer be trusted, and checks Parse rejects it rather
// than handing cursor.Bytes an overflowing or wrapped length.
func TestCorruptInstanceCountRejected(t *testing.T) {
	b := archivebuilder.New()
	cell := b.AddStruct("Cell", database.NullIndex)
	b.AddProperty(cell, "Value", database.Int32, database.Scalar, database.NullIndex)
	b.AddInstance(cell, archivebuilder.NewInstanceEncoder().Int32(7).Bytes())
	raw := b.Build()

	// Header is "DCOR"(4) + version(4) + section count(4), followed by
	// one (offset uint64, size uint64) descriptor per section in Section
	// order; SectionInstances is section index 10.
	const headerLen = 12
	const sectionInstances = 10
	descOff := headerLen + sectionInstances*16
	instSectionOff := int(binary.LittleEndian.Uint64(raw[descOff : descOff+8]))

	// Inside the instances section: structCount(u32), then per struct
	// in order, instanceCount(u32) followed by its byte region. Cell is
	// the only (and therefore first) struct.
	countFieldOff := instSectionOff + 4
	binary.LittleEndian.PutUint32(raw[countFieldOff:countFieldOff+4], 0xFFFFFFFF)

	_, err := database.Parse(raw)
	require.Error(t, err)
}
