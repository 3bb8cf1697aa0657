package demo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/generated/demo"
	"github.com/dcoretech/dcore/runtime"
)

func newTestRuntime(t *testing.T) *runtime.Runtime {
	t.Helper()
	rt, err := demo.NewRuntime(demo.BuildFixture())
	require.NoError(t, err)
	return rt
}

func TestSchemaValidation(t *testing.T) {
	rt := newTestRuntime(t)
	require.Equal(t, demo.StructCount, rt.Database().StructCount())
	require.Equal(t, demo.EnumCount, rt.Database().EnumCount())
	require.NoError(t, rt.ValidateSchema(demo.StructCount, demo.EnumCount,
		rt.Database().StructFingerprint(), rt.Database().EnumFingerprint()))
}

func TestGetFromMainRecordPureScalar(t *testing.T) {
	rt := newTestRuntime(t)
	rec, err := rt.Database().GetRecordByIndex(0)
	require.NoError(t, err)

	tr, err := rt.GetFromMainRecord(rec)
	require.NoError(t, err)
	require.Equal(t, "Point", tr.Name)
	require.Equal(t, "point.xml", tr.FileName)

	p, ok := tr.Data.(*demo.Point)
	require.True(t, ok)
	require.Equal(t, int32(3), p.X)
	require.Equal(t, int32(-4), p.Y)
}

func TestInheritancePolymorphicDispatch(t *testing.T) {
	rt := newTestRuntime(t)

	base, err := runtime.GetOrReadInstancePolymorphic[demo.Identified](rt, demo.StructBase, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(9), base.GetID())

	derived, err := runtime.GetOrReadInstancePolymorphic[demo.Identified](rt, demo.StructDerived, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(42), derived.GetID())

	d, ok := derived.(*demo.Derived)
	require.True(t, ok, "dynamic type behind the Identified interface must be *Derived")
	require.Equal(t, "derived-label", d.B)
}

func TestArrayOfClassesBag(t *testing.T) {
	rt := newTestRuntime(t)

	bagRec, err := rt.Database().GetRecordByIndex(3)
	require.NoError(t, err)
	tr, err := rt.GetFromMainRecord(bagRec)
	require.NoError(t, err)

	bag, ok := tr.Data.(*demo.Bag)
	require.True(t, ok)
	require.Len(t, bag.Items, 2)
	require.Equal(t, int32(10), bag.Items[0].Weight)
	require.Equal(t, int32(20), bag.Items[1].Weight)
}

func TestNodeCycleResolvesBothDirections(t *testing.T) {
	rt := newTestRuntime(t)

	nodeA, err := runtime.GetOrReadInstance(rt, demo.StructNode, 0, demo.ReadNode)
	require.NoError(t, err)
	require.Equal(t, "A", nodeA.Name)

	nodeB, err := nodeA.Next.Value()
	require.NoError(t, err)
	require.Equal(t, "B", nodeB.Name)

	backToA, err := nodeB.Next.Value()
	require.NoError(t, err)
	require.Same(t, nodeA, backToA, "resolving the cycle must yield the same cached *Node, not a fresh copy")
}

func TestEnumParseMissFallsBackToUnknown(t *testing.T) {
	rt := newTestRuntime(t)

	require.Equal(t, demo.ColorRed, demo.ParseColor(rt, "Red"))
	require.Equal(t, demo.ColorUnknown, demo.ParseColor(rt, "Ultraviolet"))
	require.Equal(t, "Unknown", demo.ParseColor(rt, "Ultraviolet").String())
}

func TestSchemaMismatchRejected(t *testing.T) {
	raw := demo.BuildFixture()
	db, err := database.Parse(raw)
	require.NoError(t, err)

	rt := runtime.New(db, demo.Dispatch)
	err = rt.ValidateSchema(demo.StructCount+1, demo.EnumCount, db.StructFingerprint(), db.EnumFingerprint())
	require.Error(t, err)
}

// TestSchemaMismatchRejectedOnFingerprint flips a single bit of the
// struct-table fingerprint NewRuntime was built against while leaving
// both counts correct, and expects ValidateSchema to still reject it:
// the counts alone don't catch a reordered or renamed table entry.
func TestSchemaMismatchRejectedOnFingerprint(t *testing.T) {
	raw := demo.BuildFixture()
	db, err := database.Parse(raw)
	require.NoError(t, err)

	rt := runtime.New(db, demo.Dispatch)
	err = rt.ValidateSchema(db.StructCount(), db.EnumCount(), db.StructFingerprint()^1, db.EnumFingerprint())
	require.Error(t, err)
}
