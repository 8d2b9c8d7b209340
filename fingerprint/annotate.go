package fingerprint

import (
	"github.com/biogo/store/interval"
)

// Annotation is a known repeat-element locus supplied by an external
// GFF parser. Annotations are read-only input to the pair joiner;
// matching them to repeat families is outside this package.
type Annotation struct {
	Locus Locus
	// ID is the annotation's identifier as parsed from its source
	// attributes.
	ID string
}

// annInterval adapts one annotation to the biogo interval tree.
// Coordinates are half-open internally because the tree matches on
// End > Start.
type annInterval struct {
	start, end int
	// order is the annotation's position in the input, used to break
	// distance ties deterministically.
	order int
	ann   Annotation
}

func (iv annInterval) Overlap(b interval.IntRange) bool { return iv.end > b.Start && iv.start < b.End }
func (iv annInterval) Range() interval.IntRange         { return interval.IntRange{Start: iv.start, End: iv.end} }
func (iv annInterval) ID() uintptr                      { return uintptr(iv.order) }

// annQuery is a bare query range for tree lookups.
type annQuery struct {
	start, end int
}

func (q annQuery) Overlap(b interval.IntRange) bool { return q.end > b.Start && q.start < b.End }
func (q annQuery) Range() interval.IntRange         { return interval.IntRange{Start: q.start, End: q.end} }
func (q annQuery) ID() uintptr                      { return 0 }

// annotationIndex holds per-reference interval trees over the
// known-element annotations of a run.
type annotationIndex struct {
	trees map[string]*interval.IntTree
}

func newAnnotationIndex(annotations []Annotation) *annotationIndex {
	idx := &annotationIndex{trees: make(map[string]*interval.IntTree)}
	for i, a := range annotations {
		tree := idx.trees[a.Locus.Reference]
		if tree == nil {
			tree = &interval.IntTree{}
			idx.trees[a.Locus.Reference] = tree
		}
		iv := annInterval{
			start: a.Locus.Start,
			end:   a.Locus.Stop + 1,
			order: i,
			ann:   a,
		}
		_ = tree.Insert(iv, true)
	}
	for _, tree := range idx.trees {
		tree.AdjustRanges()
	}
	return idx
}

// nearestWithin finds the annotation on the given reference that lies
// within maxDist of both anchor positions, that is of the downstream
// end of the upstream cluster (left) and the upstream end of the
// downstream cluster (right). Among candidates the nearest by summed
// distance wins; ties resolve to the earliest annotation in the input.
// The boolean result reports whether any candidate was found.
func (idx *annotationIndex) nearestWithin(reference string, left, right, maxDist int) (Annotation, bool) {
	tree := idx.trees[reference]
	if tree == nil {
		return Annotation{}, false
	}
	lo := left - maxDist
	hi := right + maxDist + 1
	if hi <= lo {
		hi = lo + 1
	}
	var (
		best      Annotation
		bestDist  int
		bestOrder int
		found     bool
	)
	tree.DoMatching(func(e interval.IntInterface) bool {
		iv := e.(annInterval)
		dl := pointDistance(iv.ann.Locus, left)
		dr := pointDistance(iv.ann.Locus, right)
		if dl > maxDist || dr > maxDist {
			return false
		}
		d := dl + dr
		if !found || d < bestDist || (d == bestDist && iv.order < bestOrder) {
			best, bestDist, bestOrder, found = iv.ann, d, iv.order, true
		}
		return false
	}, annQuery{start: lo, end: hi})
	return best, found
}

// pointDistance returns the separation between a locus and a single
// position, zero when the position falls inside the locus.
func pointDistance(l Locus, pos int) int {
	if pos < l.Start {
		return l.Start - pos
	}
	if pos > l.Stop {
		return pos - l.Stop
	}
	return 0
}
