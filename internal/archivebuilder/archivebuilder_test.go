package archivebuilder_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/internal/archivebuilder"
)

// TestClassArrayRoundTripsFuzzedWeights builds a Bag-of-Items archive
// (the same shape generated/demo exercises by hand) with a randomised
// item count and per-item weight, assembled with gofuzz rather than
// hand-picked fixture values, and checks every item's weight survives
// database.Parse unchanged.
func TestClassArrayRoundTripsFuzzedWeights(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 20)

	var weights []int32
	f.Fuzz(&weights)

	b := archivebuilder.New()
	item := b.AddStruct("Item", database.NullIndex)
	b.AddProperty(item, "Weight", database.Int32, database.Scalar, database.NullIndex)

	bag := b.AddStruct("Bag", database.NullIndex)
	b.AddProperty(bag, "Items", database.Class, database.Array, item)

	first := -1
	for _, w := range weights {
		idx := b.AddInstance(item, archivebuilder.NewInstanceEncoder().Int32(w).Bytes())
		if first == -1 {
			first = int(idx)
		}
	}
	bagInst := b.AddInstance(bag, archivebuilder.NewInstanceEncoder().
		ArrayHeader(int32(len(weights)), int32(first)).Bytes())

	db, err := database.Parse(b.Build())
	require.NoError(t, err)
	count, err := db.InstanceCount(item)
	require.NoError(t, err)
	require.EqualValues(t, len(weights), count)

	for i, want := range weights {
		c, err := db.GetReader(item, int32(i))
		require.NoError(t, err)
		got, err := c.Int32()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	bagReader, err := db.GetReader(bag, bagInst)
	require.NoError(t, err)
	gotCount, err := bagReader.Uint32()
	require.NoError(t, err)
	gotFirst, err := bagReader.Uint32()
	require.NoError(t, err)
	require.EqualValues(t, len(weights), gotCount)
	require.EqualValues(t, first, gotFirst)
}
