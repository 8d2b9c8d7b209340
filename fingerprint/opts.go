package fingerprint

import (
	"github.com/grailbio/base/errors"
)

// SplitMethod selects how clusters are resolved within one coordinate
// set.
type SplitMethod int

const (
	// SplitNone reports the flat clusters found at Eps without
	// hierarchical refinement.
	SplitNone SplitMethod = iota
	// SplitConservative refines clusters hierarchically and keeps a
	// parent cluster unless a nested configuration is strictly more
	// stable. This is the default.
	SplitConservative
	// SplitAggressive always descends to the finest resolvable
	// sub-clusters.
	//
	// Deprecated: kept only to reproduce old fingerprints; use
	// SplitConservative.
	SplitAggressive
)

func (m SplitMethod) String() string {
	switch m {
	case SplitNone:
		return "non-hierarchical"
	case SplitConservative:
		return "conservative-hierarchical"
	case SplitAggressive:
		return "aggressive-hierarchical"
	}
	return "unknown"
}

// Opts controls clustering, bin alignment and pair joining. The CLI
// layer defaults and pre-validates these values, but the core enforces
// them again before any clustering begins.
type Opts struct {
	// Eps is the maximum gap allowed between neighbouring read tips
	// within one cluster.
	Eps int
	// MinEps bounds how far the splitting engine steps down when
	// resolving nested sub-clusters. Ignored when Split is SplitNone.
	MinEps int
	// MinPoints is the minimum number of read tips per cluster.
	MinPoints int
	// Split selects the cluster refinement method.
	Split SplitMethod
	// BufferMargin pads cluster extents on both sides during bin
	// alignment so that small boundary jitter between samples does not
	// produce spurious mismatches. Reported extents are trimmed back.
	BufferMargin int
	// JoinDistance is the search radius for the known-element
	// annotation that anchors a flank pair; the direct-distance
	// fallback joins clusters within twice this value.
	JoinDistance int
	// NCommonElements is the number of most common repeat categories
	// reported per sample for each joined locus.
	NCommonElements int
	// NoColour suppresses the colour attribute derived from
	// MaxCountProportion in GFF output.
	NoColour bool
}

// DefaultOpts holds the default parameter values.
var DefaultOpts = Opts{
	Eps:             100,
	MinEps:          0,
	MinPoints:       5,
	Split:           SplitConservative,
	BufferMargin:    100,
	JoinDistance:    500,
	NCommonElements: 3,
}

// Validate reports the first configuration value that violates its
// constraint. It is called by Fingerprint before any clustering
// begins.
func (o Opts) Validate() error {
	if o.Eps < 0 {
		return errors.E("eps must be non-negative:", o.Eps)
	}
	if o.MinPoints < 1 {
		return errors.E("min-points must be at least 1:", o.MinPoints)
	}
	if o.Split != SplitNone {
		if o.MinEps < 0 {
			return errors.E("min-eps must be non-negative:", o.MinEps)
		}
		if o.MinEps >= o.Eps {
			return errors.E("min-eps must be smaller than eps:", o.MinEps)
		}
	}
	if o.BufferMargin < 0 {
		return errors.E("buffer-margin must be non-negative:", o.BufferMargin)
	}
	if o.JoinDistance < 0 {
		return errors.E("join-distance must be non-negative:", o.JoinDistance)
	}
	if o.NCommonElements < 1 {
		return errors.E("n-common-elements must be at least 1:", o.NCommonElements)
	}
	if o.Split < SplitNone || o.Split > SplitAggressive {
		return errors.E("unknown splitting method:", int(o.Split))
	}
	return nil
}
