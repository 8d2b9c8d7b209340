package cluster

// Node is one cluster in a splitting Tree. A node's member set is the
// superset of each of its children's member sets; members a child
// sheds as noise belong to the parent only.
type Node struct {
	// Span locates the members within the position slice the tree was
	// built from.
	Span Span
	// Parent is the index of the parent node, or -1 for a root.
	Parent int
	// Children holds indices of the immediate sub-clusters, in
	// position order. Empty for leaves.
	Children []int
	// Birth is the largest epsilon at which this exact member set was
	// observed as a maximal cluster, Death the epsilon at which it
	// stops being one (the widest internal gap, floored at the minimum
	// epsilon explored).
	Birth, Death int
	// Support is the width of the epsilon range over which the member
	// set persists, never less than 1.
	Support int
	// Stability scores the node for parent-versus-children selection:
	// member count times epsilon persistence.
	Stability float64
	// Selected marks the nodes chosen as the final flat partition.
	Selected bool
}

// Tree is the hierarchy of nested density clusters produced by Split.
// Nodes are stored in an arena in depth-first preorder with explicit
// parent/child indices.
type Tree struct {
	Nodes []Node
	// Roots indexes the coarsest clusters, in position order.
	Roots []int

	points    []int
	minEps    int
	minPoints int
}

// Split builds the hierarchical cluster tree for sorted positions.
// The roots are the flat clusters at maxEps; each node is then
// re-clustered just below the epsilon at which its member set breaks
// apart, stepping down toward minEps, and scored for stability.
//
// The conservative selection keeps a parent unless the summed
// stability of its recursively selected descendants is strictly
// higher. The aggressive variant always descends to the finest
// resolvable sub-clusters; it is deprecated and kept only so that old
// fingerprints can be reproduced.
//
// If minEps >= maxEps no fork can sit inside the explored epsilon
// range, so the coarse clusters are returned unchanged. If fewer than
// minPoints positions are supplied the tree is empty.
//
// REQUIRES: points is sorted in ascending order.
func Split(points []int, minEps, maxEps, minPoints int, aggressive bool) Tree {
	t := Tree{points: points, minEps: minEps, minPoints: minPoints}
	if len(points) < minPoints {
		return t
	}
	for _, s := range Flat(points, maxEps, minPoints) {
		t.Roots = append(t.Roots, t.grow(s, -1, maxEps))
	}
	for _, r := range t.Roots {
		t.resolve(r, aggressive)
	}
	return t
}

// grow appends the node covering s, discovered at epsilon birth, and
// recurses into its sub-clusters while forks remain above the minimum
// epsilon. Every internal gap of a cluster is <= its birth epsilon, so
// forks below minEps are never explored.
func (t *Tree) grow(s Span, parent, birth int) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Span: s, Parent: parent, Birth: birth})

	members := t.points[s.Lo:s.Hi]
	gap := maxGap(members)

	// The member set survives as epsilon shrinks until it can no
	// longer bridge its widest internal gap.
	death := gap
	var children []Span
	if gap > t.minEps {
		children = Flat(members, gap-1, t.minPoints)
	} else {
		// Never breaks apart within the explored range, so the set
		// persists all the way down to minEps.
		death = t.minEps
	}
	// When gap > minEps but no sub-cluster meets minPoints, the split
	// is unresolvable: this node stays the coarsest valid cluster and
	// becomes a leaf with death at the fork it could not take.

	n := &t.Nodes[idx]
	n.Death = death
	n.Support = birth - death + 1
	if n.Support < 1 {
		n.Support = 1
	}
	n.Stability = float64(s.Len()) * float64(n.Support)

	for _, c := range children {
		child := t.grow(Span{s.Lo + c.Lo, s.Lo + c.Hi}, idx, gap-1)
		// grow may reallocate t.Nodes, so index instead of holding a
		// *Node across the call.
		t.Nodes[idx].Children = append(t.Nodes[idx].Children, child)
	}
	return idx
}

// resolve picks the selected partition beneath node i and returns its
// summed stability.
func (t *Tree) resolve(i int, aggressive bool) float64 {
	if len(t.Nodes[i].Children) == 0 {
		t.Nodes[i].Selected = true
		return t.Nodes[i].Stability
	}
	sum := 0.0
	for _, c := range t.Nodes[i].Children {
		sum += t.resolve(c, aggressive)
	}
	if aggressive || sum > t.Nodes[i].Stability {
		return sum
	}
	// The parent is at least as stable as any descendant
	// configuration, so unwind the children's selections.
	t.deselect(i)
	t.Nodes[i].Selected = true
	return t.Nodes[i].Stability
}

func (t *Tree) deselect(i int) {
	for _, c := range t.Nodes[i].Children {
		t.Nodes[c].Selected = false
		t.deselect(c)
	}
}

// Selected returns the chosen clusters in position order. Nodes are
// stored in depth-first preorder over disjoint subtrees, so arena
// order is already position order.
func (t *Tree) Selected() []Node {
	var nodes []Node
	for i := range t.Nodes {
		if t.Nodes[i].Selected {
			nodes = append(nodes, t.Nodes[i])
		}
	}
	return nodes
}
