package fingerprint

import (
	"sort"
)

// JoinedLocus is the terminal record for one putative insertion:
// either two flanking clusters merged into one locus, or a single
// unpaired cluster. Records are never mutated after creation.
type JoinedLocus struct {
	// Locus is the trimmed extent covering the member clusters.
	Locus Locus
	// Category is the most common repeat category across samples.
	Category string
	// AnnotationID names the known element that anchored the pair,
	// empty when no annotation was involved.
	AnnotationID string
	// Paired reports whether two flanking clusters were joined.
	Paired bool
	// Support totals the clustered read tips across all samples.
	Support int
	// Samples summarizes each contributing sample, ascending by
	// sample identifier.
	Samples []SampleSummary
	// MaxCountProportion is the largest single-sample share of the
	// shared category's total count.
	MaxCountProportion float64

	// Comparative statistics inherited from the enclosing bin.
	ReadCountMin   int
	ReadCountMax   int
	SamplePresence int
	SampleAbsence  int
}

// joinBin pairs the clusters of one bin into joined loci. Two clusters
// pair when a known-element annotation lies within the join distance
// of the upstream cluster's downstream end and of the downstream
// cluster's upstream end; without such an anchor they pair when their
// extents are within twice the join distance of one another. Clusters
// that find no partner are emitted as singletons.
func joinBin(bin Bin, ann *annotationIndex, opts Opts) []JoinedLocus {
	clusters := make([]Cluster, len(bin.Clusters))
	copy(clusters, bin.Clusters)
	sort.Slice(clusters, func(i, j int) bool {
		a, b := clusters[i].Trim(), clusters[j].Trim()
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Stop != b.Stop {
			return a.Stop < b.Stop
		}
		if clusters[i].Set.Sample != clusters[j].Set.Sample {
			return clusters[i].Set.Sample < clusters[j].Set.Sample
		}
		return clusters[i].Set.Category < clusters[j].Set.Category
	})

	used := make([]bool, len(clusters))
	var out []JoinedLocus
	for i := range clusters {
		if used[i] {
			continue
		}
		upstream := clusters[i].Trim()

		partner, annID := -1, ""
		// Anchored pairing first: an annotation between the flanks
		// overrides direct distance.
		if ann != nil {
			for j := i + 1; j < len(clusters); j++ {
				if used[j] {
					continue
				}
				downstream := clusters[j].Trim()
				if a, ok := ann.nearestWithin(upstream.Reference, upstream.Stop, downstream.Start, opts.JoinDistance); ok {
					partner, annID = j, a.ID
					break
				}
			}
		}
		if partner < 0 {
			for j := i + 1; j < len(clusters); j++ {
				if used[j] {
					continue
				}
				if upstream.DistanceTo(clusters[j].Trim()) <= 2*opts.JoinDistance {
					partner = j
					break
				}
			}
		}

		members := clusters[i : i+1 : i+1]
		paired := false
		if partner >= 0 {
			members = append(members, clusters[partner])
			used[partner] = true
			paired = true
		}
		used[i] = true
		if locus, ok := newJoinedLocus(bin, members, annID, paired, opts); ok {
			out = append(out, locus)
		}
	}
	return out
}

// newJoinedLocus builds the terminal record from its member clusters.
// Construction is symmetric in the members: the extent is the union of
// the trimmed extents and the summaries are pure reductions, so
// joining A with B equals joining B with A. A locus without any
// supporting sample is never emitted.
func newJoinedLocus(bin Bin, members []Cluster, annID string, paired bool, opts Opts) (JoinedLocus, bool) {
	samples, topCategory, maxProportion := summarize(members, opts.NCommonElements)
	if len(samples) == 0 {
		return JoinedLocus{}, false
	}
	extent := members[0].Trim()
	support := 0
	for _, c := range members {
		extent = extent.union(c.Trim())
		support += c.Count()
	}
	return JoinedLocus{
		Locus:              extent,
		Category:           topCategory,
		AnnotationID:       annID,
		Paired:             paired,
		Support:            support,
		Samples:            samples,
		MaxCountProportion: maxProportion,
		ReadCountMin:       bin.ReadCountMin,
		ReadCountMax:       bin.ReadCountMax,
		SamplePresence:     bin.SamplePresence,
		SampleAbsence:      bin.SampleAbsence,
	}, true
}
