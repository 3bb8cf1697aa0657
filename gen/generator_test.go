package gen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/gen"
	"github.com/dcoretech/dcore/generated/demo"
	"github.com/dcoretech/dcore/internal/archivebuilder"
)

func buildDemoDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Parse(demo.BuildFixture())
	require.NoError(t, err)
	return db
}

func TestGenerateProducesValidSyntaxForEveryShape(t *testing.T) {
	db := buildDemoDatabase(t)

	result, err := gen.Generate(db, gen.Options{PackageName: "demogen"})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	src := string(result.Files[0].Contents)
	require.Equal(t, "demogen.go", result.Files[0].Path)
	require.Contains(t, src, "package demogen")
	require.Contains(t, src, "type Base struct")
	require.Contains(t, src, "type Derived struct")
	require.Contains(t, src, "type BaseRef interface")
	require.Contains(t, src, "func ReadBase(rt *runtime.Runtime, c cursor.Cursor) (*Base, error)")
	require.Contains(t, src, "func readDerivedFields(rt *runtime.Runtime, c *cursor.Cursor) (Derived, error)")
	require.Contains(t, src, "func Dispatch(rt *runtime.Runtime, structIndex, instanceIndex int32) (any, bool, error)")
	require.Contains(t, src, "func NewRuntime(data []byte) (*runtime.Runtime, error)")
	require.Contains(t, src, "func ParseColor(rt *runtime.Runtime, stringID string) Color")

	// StructFingerprint/EnumFingerprint must be stamped out as literal
	// constants computed from db, and NewRuntime must validate against
	// those constants rather than against the archive it just parsed;
	// otherwise the fingerprint half of ValidateSchema never fails.
	require.Contains(t, src, "StructFingerprint = "+formatHex(db.StructFingerprint()))
	require.Contains(t, src, "EnumFingerprint   = "+formatHex(db.EnumFingerprint()))
	require.Contains(t, src, "rt.ValidateSchema(StructCount, EnumCount, StructFingerprint, EnumFingerprint)")
	require.NotContains(t, src, "db.StructFingerprint()")
	require.NotContains(t, src, "db.EnumFingerprint()")
}

func formatHex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func TestGenerateIsDeterministic(t *testing.T) {
	db := buildDemoDatabase(t)

	first, err := gen.Generate(db, gen.Options{PackageName: "demogen"})
	require.NoError(t, err)
	second, err := gen.Generate(db, gen.Options{PackageName: "demogen"})
	require.NoError(t, err)

	require.Equal(t, first.Files[0].Contents, second.Files[0].Contents)
}

func TestGenerateWithManifest(t *testing.T) {
	db := buildDemoDatabase(t)

	result, err := gen.Generate(db, gen.Options{PackageName: "demogen", EmitManifest: true})
	require.NoError(t, err)
	require.NotNil(t, result.Manifest)

	m := result.Manifest
	require.Equal(t, "demogen", m.Package)
	require.Equal(t, db.StructCount(), m.StructCount)
	require.Equal(t, db.EnumCount(), m.EnumCount)
	require.Len(t, m.Structs, db.StructCount())
	require.Len(t, m.Enums, db.EnumCount())
	for _, s := range m.Structs {
		require.Equal(t, "demogen.go", s.File)
	}
}

func TestGenerateRejectsMissingPackageName(t *testing.T) {
	db := buildDemoDatabase(t)

	_, err := gen.Generate(db, gen.Options{})
	require.Error(t, err)
}

func TestGenerateEscapesReservedWordPropertyNames(t *testing.T) {
	b := archivebuilder.New()
	widget := b.AddStruct("Widget", database.NullIndex)
	b.AddProperty(widget, "range", database.Int32, database.Scalar, database.NullIndex)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	result, err := gen.Generate(db, gen.Options{PackageName: "widgetgen"})
	require.NoError(t, err)

	src := string(result.Files[0].Contents)
	require.Contains(t, src, "range_, err := c.Int32()")
	require.NotContains(t, src, " range, err := c.Int32()")
}

// TestGenerateCoversPrimitiveArraysGUIDAndReference exercises property
// shapes demo's fixture doesn't: a GUID scalar field, an Int32 array
// field, and a Reference field, on a schema built directly through
// archivebuilder rather than demo.BuildFixture.
func TestGenerateCoversPrimitiveArraysGUIDAndReference(t *testing.T) {
	b := archivebuilder.New()

	target := b.AddStruct("Target", database.NullIndex)
	b.AddProperty(target, "Value", database.Int32, database.Scalar, database.NullIndex)

	holder := b.AddStruct("Holder", database.NullIndex)
	b.AddProperty(holder, "Id", database.GUID, database.Scalar, database.NullIndex)
	b.AddProperty(holder, "Scores", database.Int32, database.Array, database.NullIndex)
	b.AddProperty(holder, "Link", database.Reference, database.Scalar, target)

	db, err := database.Parse(b.Build())
	require.NoError(t, err)

	result, err := gen.Generate(db, gen.Options{PackageName: "holdergen"})
	require.NoError(t, err)

	src := string(result.Files[0].Contents)
	require.True(t, strings.Contains(src, `"github.com/google/uuid"`), "GUID field should pull in the uuid import")
	require.Contains(t, src, "Id     uuid.UUID")
	require.Contains(t, src, "id, err := c.GUID()")
	require.Contains(t, src, "Scores []int32")
	require.Contains(t, src, "runtime.ReadInt32Array(c, rt.Database().Pools().Int32)")
	require.Contains(t, src, "Link   *runtime.LazyRef[TargetRef]")
	require.Contains(t, src, "runtime.NewReferenceRef[TargetRef](rt, linkGUID)")
}
