package cluster

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectedSpans(t Tree) []Span {
	var spans []Span
	for _, n := range t.Selected() {
		spans = append(spans, n.Span)
	}
	return spans
}

// The classic two-mode input: a coarse parent containing two tight
// sub-clusters that persist over a much wider epsilon range than the
// parent itself.
func TestSplitRecoversSubClusters(t *testing.T) {
	points := []int{100, 105, 110, 500, 505}
	tree := Split(points, 5, 400, 2, false)

	require.Len(t, tree.Roots, 1)
	root := tree.Nodes[tree.Roots[0]]
	assert.Equal(t, Span{0, 5}, root.Span)
	assert.Equal(t, -1, root.Parent)
	require.Len(t, root.Children, 2)

	left := tree.Nodes[root.Children[0]]
	right := tree.Nodes[root.Children[1]]
	assert.Equal(t, Span{0, 3}, left.Span)
	assert.Equal(t, Span{3, 5}, right.Span)
	assert.Equal(t, tree.Roots[0], left.Parent)

	// The parent persists only from eps 400 down to its 390-wide gap.
	assert.Equal(t, 390, root.Death)
	assert.Equal(t, 11, root.Support)
	// Each child persists from eps 389 down to the minimum epsilon.
	assert.Equal(t, 385, left.Support)
	assert.Equal(t, 385, right.Support)
	assert.True(t, left.Stability > root.Stability)
	assert.True(t, right.Stability > root.Stability)

	expect.That(t, selectedSpans(tree), h.ElementsAre(Span{0, 3}, Span{3, 5}))
}

// A long-lived parent with short-lived children is kept by the
// conservative variant and still split by the aggressive one.
func TestSplitConservativeVersusAggressive(t *testing.T) {
	points := []int{0, 1, 2, 100, 101, 102}

	conservative := Split(points, 0, 1000, 2, false)
	expect.That(t, selectedSpans(conservative), h.ElementsAre(Span{0, 6}))

	aggressive := Split(points, 0, 1000, 2, true)
	expect.That(t, selectedSpans(aggressive), h.ElementsAre(Span{0, 3}, Span{3, 6}))

	// Both variants agree on the tree shape, only selection differs.
	require.Len(t, conservative.Nodes, 3)
	require.Len(t, aggressive.Nodes, 3)
	assert.Equal(t, conservative.Nodes[0].Stability, aggressive.Nodes[0].Stability)
}

// Parent member sets are supersets of their children's.
func TestSplitTreeInvariants(t *testing.T) {
	points := []int{0, 1, 2, 3, 40, 41, 42, 90, 91, 92, 200, 201, 202, 203, 204}
	tree := Split(points, 0, 500, 2, false)

	for i, n := range tree.Nodes {
		assert.True(t, n.Support >= 1)
		assert.True(t, n.Span.Len() >= 2)
		for _, c := range n.Children {
			child := tree.Nodes[c]
			assert.Equal(t, i, child.Parent)
			assert.True(t, child.Span.Lo >= n.Span.Lo)
			assert.True(t, child.Span.Hi <= n.Span.Hi)
			assert.True(t, child.Birth < n.Birth)
		}
	}
	// Selected nodes partition disjointly.
	sel := tree.Selected()
	for i := 1; i < len(sel); i++ {
		assert.True(t, sel[i-1].Span.Hi <= sel[i].Span.Lo)
	}
}

// No fork fits inside the explored epsilon range, so the coarse
// cluster comes back unchanged with minimum support.
func TestSplitDegenerateEpsilonRange(t *testing.T) {
	points := []int{100, 105, 110, 500, 505}
	tree := Split(points, 400, 400, 2, false)

	require.Len(t, tree.Roots, 1)
	root := tree.Nodes[tree.Roots[0]]
	assert.Empty(t, root.Children)
	assert.True(t, root.Selected)
	assert.Equal(t, 1, root.Support)
}

// A fork whose sub-clusters all fall below minPoints is unresolvable;
// the parent stays as the coarsest valid cluster.
func TestSplitUnresolvable(t *testing.T) {
	points := []int{0, 10, 20, 30}
	tree := Split(points, 0, 100, 3, false)

	require.Len(t, tree.Roots, 1)
	root := tree.Nodes[tree.Roots[0]]
	assert.Empty(t, root.Children)
	assert.True(t, root.Selected)
	assert.Equal(t, Span{0, 4}, root.Span)
}

func TestSplitTooFewPoints(t *testing.T) {
	tree := Split([]int{1, 2}, 0, 10, 5, false)
	assert.Empty(t, tree.Nodes)
	assert.Empty(t, tree.Selected())
}
