package jsonfacade_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcoretech/dcore/generated/demo"
	"github.com/dcoretech/dcore/jsonfacade"
	"github.com/dcoretech/dcore/runtime"
)

func newDemoRuntime(t *testing.T) *runtime.Runtime {
	t.Helper()
	rt, err := demo.NewRuntime(demo.BuildFixture())
	require.NoError(t, err)
	return rt
}

func TestToTreePlainScalarStruct(t *testing.T) {
	rt := newDemoRuntime(t)
	point, err := runtime.GetOrReadInstance(rt, demo.StructPoint, 0, demo.ReadPoint)
	require.NoError(t, err)

	tree, err := jsonfacade.ToTree(rt, point)
	require.NoError(t, err)

	m, ok := tree.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 3, m["X"])
	require.EqualValues(t, -4, m["Y"])
}

func TestToTreeFlattensEmbeddedAncestor(t *testing.T) {
	rt := newDemoRuntime(t)
	derived, err := runtime.GetOrReadInstance(rt, demo.StructDerived, 0, demo.ReadDerived)
	require.NoError(t, err)

	tree, err := jsonfacade.ToTree(rt, derived)
	require.NoError(t, err)

	m, ok := tree.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 42, m["ID"])
	require.Equal(t, "derived-label", m["B"])
	_, hasNestedBase := m["Base"]
	require.False(t, hasNestedBase, "ancestor fields should be flattened, not nested under Base")
}

func TestToTreeClassArray(t *testing.T) {
	rt := newDemoRuntime(t)
	bag, err := runtime.GetOrReadInstance(rt, demo.StructBag, 0, demo.ReadBag)
	require.NoError(t, err)

	tree, err := jsonfacade.ToTree(rt, bag)
	require.NoError(t, err)

	m := tree.(map[string]any)
	items, ok := m["Items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	require.EqualValues(t, 10, first["Weight"])
}

func TestToTreeResolvesPointerInline(t *testing.T) {
	rt := newDemoRuntime(t)
	nodeA, err := runtime.GetOrReadInstance(rt, demo.StructNode, 0, demo.ReadNode)
	require.NoError(t, err)

	tree, err := jsonfacade.ToTree(rt, nodeA)
	require.NoError(t, err)

	m := tree.(map[string]any)
	require.Equal(t, "A", m["Name"])
	next, ok := m["Next"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "B", next["Name"])
}

func TestToTreeBreaksPointerCycle(t *testing.T) {
	// nodeA (struct 5, instance 0) points at nodeB (instance 1) and back
	// again. The root itself is never reached through a LazyRef, so it
	// never lands on the cycle-break path; the walk only breaks once it
	// re-enters nodeB's own key a second time, three hops down.
	rt := newDemoRuntime(t)
	nodeA, err := runtime.GetOrReadInstance(rt, demo.StructNode, 0, demo.ReadNode)
	require.NoError(t, err)

	tree, err := jsonfacade.ToTree(rt, nodeA)
	require.NoError(t, err)

	m := tree.(map[string]any)
	require.Equal(t, "A", m["Name"])

	next := m["Next"].(map[string]any)
	require.Equal(t, "B", next["Name"])

	nextNext := next["Next"].(map[string]any)
	require.Equal(t, "A", nextNext["Name"])

	nextNextNext, ok := nextNext["Next"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "(5, 1)", nextNextNext["$circularRef"])
}

func TestMarshalProducesValidJSON(t *testing.T) {
	rt := newDemoRuntime(t)
	point, err := runtime.GetOrReadInstance(rt, demo.StructPoint, 0, demo.ReadPoint)
	require.NoError(t, err)

	out, err := jsonfacade.Marshal(rt, point)
	require.NoError(t, err)
	require.Contains(t, string(out), `"X":3`)
}

func TestMarshalRecordIncludesIdentity(t *testing.T) {
	rt := newDemoRuntime(t)
	mainRec, err := rt.Database().GetRecordByIndex(0)
	require.NoError(t, err)

	rec, err := rt.GetFromMainRecord(mainRec)
	require.NoError(t, err)

	out, err := jsonfacade.MarshalRecord(rt, rec)
	require.NoError(t, err)

	s := string(out)
	require.Contains(t, s, `"FileName": "point.xml"`)
	require.Contains(t, s, `"Type": "Point"`)
}
