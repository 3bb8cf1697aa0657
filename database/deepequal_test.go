package database_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/generated/demo"
)

// TestParseIsStructurallyDeterministic parses the same archive bytes
// twice and diffs every struct and enum definition field by field:
// go-test/deep's Equal reports which field actually differs rather than
// a bare pass/fail, which matters here because a schema-table parsing
// regression usually shows up as one stray field (an off-by-one
// FirstPropertyIndex, a dropped FingerprintContribution), not a wholesale
// mismatch reflect.DeepEqual would report identically either way.
func TestParseIsStructurallyDeterministic(t *testing.T) {
	data := demo.BuildFixture()

	first, err := database.Parse(data)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := database.Parse(data)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	for i := 0; i < first.StructCount(); i++ {
		a, err := first.Struct(int32(i))
		if err != nil {
			t.Fatalf("struct %d: %v", i, err)
		}
		b, err := second.Struct(int32(i))
		if err != nil {
			t.Fatalf("struct %d: %v", i, err)
		}
		if diff := deep.Equal(a, b); diff != nil {
			t.Errorf("struct %d differs between parses: %v", i, diff)
		}
	}

	for i := 0; i < first.EnumCount(); i++ {
		a, err := first.Enum(int32(i))
		if err != nil {
			t.Fatalf("enum %d: %v", i, err)
		}
		b, err := second.Enum(int32(i))
		if err != nil {
			t.Fatalf("enum %d: %v", i, err)
		}
		if diff := deep.Equal(a, b); diff != nil {
			t.Errorf("enum %d differs between parses: %v", i, diff)
		}
	}
}
