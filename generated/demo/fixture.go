package demo

import (
	"github.com/google/uuid"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/internal/archivebuilder"
)

// BuildFixture assembles a tiny synthetic archive matching exactly this
// package's schema: one instance of Point, one of Base, one of Derived,
// two Items inside one Bag, and two mutually pointing Nodes. It exists
// so tests (in this package and in other packages) have a real,
// self-consistent archive to parse instead of a multi-gigabyte
// production file.
func BuildFixture() []byte {
	b := archivebuilder.New()

	point := b.AddStruct("Point", database.NullIndex)
	b.AddProperty(point, "X", database.Int32, database.Scalar, database.NullIndex)
	b.AddProperty(point, "Y", database.Int32, database.Scalar, database.NullIndex)

	base := b.AddStruct("Base", database.NullIndex)
	b.AddProperty(base, "ID", database.Uint8, database.Scalar, database.NullIndex)

	derived := b.AddStruct("Derived", base)
	b.AddProperty(derived, "B", database.String, database.Scalar, database.NullIndex)

	item := b.AddStruct("Item", database.NullIndex)
	b.AddProperty(item, "Weight", database.Int32, database.Scalar, database.NullIndex)

	bag := b.AddStruct("Bag", database.NullIndex)
	b.AddProperty(bag, "Items", database.Class, database.Array, item)

	node := b.AddStruct("Node", database.NullIndex)
	b.AddProperty(node, "Name", database.String, database.Scalar, database.NullIndex)
	b.AddProperty(node, "Next", database.StrongPointer, database.Scalar, node)

	colorEnum := b.AddEnum("Color")
	b.AddEnumOption(colorEnum, "Red")
	b.AddEnumOption(colorEnum, "Green")
	b.AddEnumOption(colorEnum, "Blue")

	if point != StructPoint || base != StructBase || derived != StructDerived ||
		item != StructItem || bag != StructBag || node != StructNode {
		panic("demo: fixture struct order drifted from the generated constants")
	}

	pointInst := b.AddInstance(point, archivebuilder.NewInstanceEncoder().Int32(3).Int32(-4).Bytes())

	baseInst := b.AddInstance(base, archivebuilder.NewInstanceEncoder().Uint8(9).Bytes())

	label := b.WriteString("derived-label")
	derivedInst := b.AddInstance(derived, archivebuilder.NewInstanceEncoder().
		Uint8(42).StringRef(label.Offset, label.Length).Bytes())

	item0 := b.AddInstance(item, archivebuilder.NewInstanceEncoder().Int32(10).Bytes())
	b.AddInstance(item, archivebuilder.NewInstanceEncoder().Int32(20).Bytes())
	bagInst := b.AddInstance(bag, archivebuilder.NewInstanceEncoder().ArrayHeader(2, item0).Bytes())

	nameA := b.WriteString("A")
	nameB := b.WriteString("B")
	// Node instance indices are assigned sequentially starting at 0, so
	// nodeA (added first) is 0 and nodeB (added second) is 1 — known
	// ahead of AddInstance, which lets each node's raw bytes point at the
	// other's index even though they form a cycle.
	const nodeAIdx, nodeBIdx = 0, 1
	nodeAInst := b.AddInstance(node, archivebuilder.NewInstanceEncoder().
		StringRef(nameA.Offset, nameA.Length).Pointer(node, nodeBIdx).Bytes())
	nodeBInst := b.AddInstance(node, archivebuilder.NewInstanceEncoder().
		StringRef(nameB.Offset, nameB.Length).Pointer(node, nodeAIdx).Bytes())

	b.AddMainRecord(uuid.MustParse("00000000-0000-0000-0000-000000000001"), "point.xml", point, pointInst)
	b.AddMainRecord(uuid.MustParse("00000000-0000-0000-0000-000000000002"), "base.xml", base, baseInst)
	b.AddMainRecord(uuid.MustParse("00000000-0000-0000-0000-000000000003"), "derived.xml", derived, derivedInst)
	b.AddMainRecord(uuid.MustParse("00000000-0000-0000-0000-000000000004"), "bag.xml", bag, bagInst)
	b.AddMainRecord(uuid.MustParse("00000000-0000-0000-0000-000000000005"), "nodeA.xml", node, nodeAInst)
	b.AddMainRecord(uuid.MustParse("00000000-0000-0000-0000-000000000006"), "nodeB.xml", node, nodeBInst)

	return b.Build()
}
