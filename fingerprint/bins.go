package fingerprint

import (
	"sort"

	"v.io/x/lib/vlog"
)

// Bin groups clusters from any sample or category on one reference
// whose buffered extents overlap, directly or through a chain of
// overlaps. A bin aggregates references to its clusters; it does not
// own them. Bin membership is decided entirely by the buffered
// extents, so later trimming of the reported coordinates never changes
// which clusters share a bin.
type Bin struct {
	// Extent is the union of the members' buffered extents.
	Extent   Locus
	Clusters []Cluster

	// Comparative statistics across the samples of the run, counting
	// clustered read tips inside the bin. Samples without a cluster in
	// the bin count as zero.
	ReadCountMin   int
	ReadCountMax   int
	SamplePresence int
	SampleAbsence  int
}

// mergeBins sweeps the buffered clusters of one reference, sorted by
// extent, and merges transitively overlapping ones into bins. The
// result does not depend on the input order of clusters within or
// across samples. samples is the full ordered sample list of the run,
// used for the comparative statistics.
func mergeBins(clusters []Cluster, margin int, samples []string) []Bin {
	if len(clusters) == 0 {
		return nil
	}
	sorted := make([]Cluster, len(clusters))
	copy(sorted, clusters)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Buffer(margin), sorted[j].Buffer(margin)
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Stop != b.Stop {
			return a.Stop < b.Stop
		}
		if sorted[i].Set.Sample != sorted[j].Set.Sample {
			return sorted[i].Set.Sample < sorted[j].Set.Sample
		}
		return sorted[i].Set.Category < sorted[j].Set.Category
	})

	var bins []Bin
	open := Bin{Extent: sorted[0].Buffer(margin), Clusters: sorted[:1:1]}
	for _, c := range sorted[1:] {
		if c.Set.Reference != open.Extent.Reference {
			vlog.Panicf("fingerprint: bin sweep crossed from reference %s to %s",
				open.Extent.Reference, c.Set.Reference)
		}
		buffered := c.Buffer(margin)
		// Inclusive overlap with the open extent chains the cluster
		// into the current bin.
		if buffered.Start <= open.Extent.Stop {
			open.Extent = open.Extent.union(buffered)
			open.Clusters = append(open.Clusters, c)
			continue
		}
		bins = append(bins, open)
		open = Bin{Extent: buffered, Clusters: []Cluster{c}}
	}
	bins = append(bins, open)

	for i := range bins {
		bins[i].fillStats(samples)
	}
	return bins
}

// fillStats computes the per-sample presence and read-count spread for
// the bin.
func (b *Bin) fillStats(samples []string) {
	counts := make(map[string]int, len(samples))
	for _, c := range b.Clusters {
		counts[c.Set.Sample] += c.Count()
	}
	first := true
	for _, sample := range samples {
		n := counts[sample]
		if n > 0 {
			b.SamplePresence++
		} else {
			b.SampleAbsence++
		}
		if first || n < b.ReadCountMin {
			b.ReadCountMin = n
		}
		if first || n > b.ReadCountMax {
			b.ReadCountMax = n
		}
		first = false
	}
}
