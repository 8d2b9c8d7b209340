package fingerprint

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestWithin(t *testing.T) {
	idx := newAnnotationIndex([]Annotation{
		{Locus: Locus{Reference: "chr1", Start: 100, Stop: 200}, ID: "te0"},
		{Locus: Locus{Reference: "chr1", Start: 300, Stop: 400}, ID: "te1"},
	})

	// te1 is closer by summed distance to both anchors (50+40 vs 50+60).
	a, ok := idx.nearestWithin("chr1", 250, 260, 100)
	require.True(t, ok)
	expect.EQ(t, a.ID, "te1")

	// Anchors inside an annotation count as distance zero.
	a, ok = idx.nearestWithin("chr1", 150, 160, 10)
	require.True(t, ok)
	expect.EQ(t, a.ID, "te0")
}

func TestNearestWithinRequiresBothAnchors(t *testing.T) {
	idx := newAnnotationIndex([]Annotation{
		{Locus: Locus{Reference: "chr1", Start: 100, Stop: 200}, ID: "te0"},
	})

	// Near the left anchor only: the right anchor is out of range.
	_, ok := idx.nearestWithin("chr1", 210, 900, 50)
	assert.False(t, ok)

	_, ok = idx.nearestWithin("chr1", 210, 260, 60)
	assert.True(t, ok)

	_, ok = idx.nearestWithin("chr1", 250, 260, 45)
	assert.False(t, ok)
}

func TestNearestWithinTieBreaksByInputOrder(t *testing.T) {
	idx := newAnnotationIndex([]Annotation{
		{Locus: Locus{Reference: "chr1", Start: 100, Stop: 200}, ID: "first"},
		{Locus: Locus{Reference: "chr1", Start: 100, Stop: 200}, ID: "second"},
	})
	a, ok := idx.nearestWithin("chr1", 90, 210, 50)
	require.True(t, ok)
	expect.EQ(t, a.ID, "first")
}

func TestNearestWithinUnknownReference(t *testing.T) {
	idx := newAnnotationIndex([]Annotation{
		{Locus: Locus{Reference: "chr1", Start: 100, Stop: 200}, ID: "te0"},
	})
	_, ok := idx.nearestWithin("chr2", 100, 200, 1000)
	assert.False(t, ok)

	empty := newAnnotationIndex(nil)
	_, ok = empty.nearestWithin("chr1", 100, 200, 1000)
	assert.False(t, ok)
}
