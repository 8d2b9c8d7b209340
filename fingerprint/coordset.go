package fingerprint

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/tefingerprint/cluster"
)

// CoordinateSet is the ordered collection of informative read-tip
// positions for one (reference, category, sample) triple, as supplied
// by an external read extractor. It is built once and never mutated;
// clusters reference runs of its positions without copying them.
type CoordinateSet struct {
	Reference string
	Category  string
	Sample    string

	positions []int
}

// NewCoordinateSet copies and sorts the supplied positions. Positions
// may repeat; ties keep their relative input order. A negative
// position is malformed input and is reported against the offending
// reference and sample.
func NewCoordinateSet(reference, category, sample string, positions []int) (*CoordinateSet, error) {
	p := make([]int, len(positions))
	copy(p, positions)
	sort.Ints(p)
	if len(p) > 0 && p[0] < 0 {
		return nil, errors.E("negative read-tip position for reference", reference, "sample", sample)
	}
	return &CoordinateSet{
		Reference: reference,
		Category:  category,
		Sample:    sample,
		positions: p,
	}, nil
}

// Len returns the number of read-tip positions in the set.
func (s *CoordinateSet) Len() int { return len(s.positions) }

// Positions returns the sorted positions. The slice is shared with
// the set and must not be modified.
func (s *CoordinateSet) Positions() []int { return s.positions }

// Cluster is a read-only view of one density cluster's members within
// its originating CoordinateSet. The cluster owns its member
// references, not the set itself.
type Cluster struct {
	Set  *CoordinateSet
	Span cluster.Span
	// Support is the epsilon persistence assigned by the splitting
	// engine, or 1 for flat clusters.
	Support int
	// Stability is the splitting engine's selection score, zero for
	// flat clusters.
	Stability float64
}

// Count returns the number of supporting read tips.
func (c Cluster) Count() int { return c.Span.Len() }

// Trim returns the exact reported extent: the outermost member
// positions. Trimming is idempotent and discards any comparison
// margin.
func (c Cluster) Trim() Locus {
	pos := c.Set.positions
	return Locus{
		Reference: c.Set.Reference,
		Start:     pos[c.Span.Lo],
		Stop:      pos[c.Span.Hi-1],
	}
}

// Buffer returns the comparison extent used during bin alignment: the
// trimmed extent padded by margin on both sides, clamped at zero.
// Buffering never changes cluster membership.
func (c Cluster) Buffer(margin int) Locus {
	l := c.Trim()
	l.Start -= margin
	if l.Start < 0 {
		l.Start = 0
	}
	l.Stop += margin
	return l
}
