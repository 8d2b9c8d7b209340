package fingerprint

import (
	"testing"

	"github.com/grailbio/tefingerprint/cluster"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCluster builds a cluster covering all positions of a fresh
// coordinate set.
func newTestCluster(t *testing.T, reference, category, sample string, positions ...int) Cluster {
	t.Helper()
	set, err := NewCoordinateSet(reference, category, sample, positions)
	require.NoError(t, err)
	return Cluster{Set: set, Span: cluster.Span{Lo: 0, Hi: set.Len()}, Support: 1}
}

func TestNewCoordinateSet(t *testing.T) {
	input := []int{110, 100, 105}
	set, err := NewCoordinateSet("chr1", "gypsy", "s1", input)
	require.NoError(t, err)
	expect.EQ(t, set.Positions(), []int{100, 105, 110})
	// The caller's slice is copied, not reordered in place.
	expect.EQ(t, input, []int{110, 100, 105})
	expect.EQ(t, set.Len(), 3)

	_, err = NewCoordinateSet("chr1", "gypsy", "s1", []int{100, -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chr1")
	assert.Contains(t, err.Error(), "s1")
}

func TestClusterTrimAndBuffer(t *testing.T) {
	c := newTestCluster(t, "chr1", "gypsy", "s1", 100, 105, 110)
	expect.EQ(t, c.Count(), 3)
	expect.EQ(t, c.Trim(), Locus{Reference: "chr1", Start: 100, Stop: 110})
	expect.EQ(t, c.Buffer(20), Locus{Reference: "chr1", Start: 80, Stop: 130})
	assert.True(t, c.Buffer(20).Contains(c.Trim()))

	// Buffering clamps at the start of the reference.
	c = newTestCluster(t, "chr1", "gypsy", "s1", 5, 10)
	expect.EQ(t, c.Buffer(50), Locus{Reference: "chr1", Start: 0, Stop: 60})

	// A zero margin leaves the trimmed extent unchanged.
	expect.EQ(t, c.Buffer(0), c.Trim())
}

func TestLocusRelations(t *testing.T) {
	a := Locus{Reference: "chr1", Start: 100, Stop: 200}
	b := Locus{Reference: "chr1", Start: 200, Stop: 300}
	c := Locus{Reference: "chr1", Start: 250, Stop: 300}
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
	assert.False(t, a.Overlaps(Locus{Reference: "chr2", Start: 100, Stop: 200}))

	assert.True(t, b.Contains(c))
	assert.False(t, c.Contains(b))

	expect.EQ(t, a.DistanceTo(c), 50)
	expect.EQ(t, c.DistanceTo(a), 50)
	expect.EQ(t, a.DistanceTo(b), 0)
	expect.EQ(t, a.union(c), Locus{Reference: "chr1", Start: 100, Stop: 300})
}
