package fingerprint

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/tefingerprint/cluster"
)

// Key identifies one coordinate set in the input mapping.
type Key struct {
	Reference string
	Category  string
	Sample    string
}

// Input maps coordinate-set keys to informative read-tip positions, as
// produced by an external read extractor. Positions need not arrive
// sorted; they are copied and sorted during ingestion, so the caller's
// slices are never modified.
type Input map[Key][]int

// Fingerprint clusters every coordinate set, aligns the clusters
// across samples and categories, and joins flanking cluster pairs into
// insertion loci. References are processed by parallel workers that
// own their coordinate sets, clusters and bins exclusively; results
// are returned to the collector, never written to shared state. The
// first worker failure aborts the whole run, since a missing
// reference would silently under-report insertions. The collected loci
// carry a final deterministic order: reference, start, stop, category.
func Fingerprint(input Input, annotations []Annotation, opts Opts) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Split == SplitAggressive {
		log.Error.Printf("fingerprint: aggressive splitting is deprecated, prefer conservative splitting")
	}

	byRef := map[string][]Key{}
	sampleSet := map[string]bool{}
	for key := range input {
		byRef[key.Reference] = append(byRef[key.Reference], key)
		sampleSet[key.Sample] = true
	}
	refs := make([]string, 0, len(byRef))
	for ref := range byRef {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	samples := make([]string, 0, len(sampleSet))
	for sample := range sampleSet {
		samples = append(samples, sample)
	}
	sort.Strings(samples)

	annIdx := newAnnotationIndex(annotations)
	log.Printf("fingerprint: %d coordinate set(s) across %d reference(s) and %d sample(s)",
		len(input), len(refs), len(samples))

	perRef := make([][]JoinedLocus, len(refs))
	err := traverse.Each(len(refs), func(i int) error {
		ref := refs[i]
		keys := byRef[ref]
		sort.Slice(keys, func(a, b int) bool {
			if keys[a].Category != keys[b].Category {
				return keys[a].Category < keys[b].Category
			}
			return keys[a].Sample < keys[b].Sample
		})
		var clusters []Cluster
		for _, key := range keys {
			set, err := NewCoordinateSet(key.Reference, key.Category, key.Sample, input[key])
			if err != nil {
				return err
			}
			clusters = append(clusters, clusterSet(set, opts)...)
		}
		bins := mergeBins(clusters, opts.BufferMargin, samples)
		var loci []JoinedLocus
		for _, b := range bins {
			loci = append(loci, joinBin(b, annIdx, opts)...)
		}
		log.Debug.Printf("fingerprint: %s: %d cluster(s) in %d bin(s) joined to %d loci",
			ref, len(clusters), len(bins), len(loci))
		perRef[i] = loci
		return nil
	})
	if err != nil {
		return nil, err
	}

	var all []JoinedLocus
	for _, loci := range perRef {
		all = append(all, loci...)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Locus.Reference != b.Locus.Reference {
			return a.Locus.Reference < b.Locus.Reference
		}
		if a.Locus.Start != b.Locus.Start {
			return a.Locus.Start < b.Locus.Start
		}
		if a.Locus.Stop != b.Locus.Stop {
			return a.Locus.Stop < b.Locus.Stop
		}
		return a.Category < b.Category
	})
	log.Printf("fingerprint: %d joined locus record(s)", len(all))
	return &Result{Loci: all, NoColour: opts.NoColour}, nil
}

// clusterSet produces the clusters of one coordinate set under the
// configured splitting method. Sets with no positions yield no
// clusters.
func clusterSet(set *CoordinateSet, opts Opts) []Cluster {
	var out []Cluster
	if opts.Split == SplitNone {
		for _, s := range cluster.Flat(set.positions, opts.Eps, opts.MinPoints) {
			out = append(out, Cluster{Set: set, Span: s, Support: 1})
		}
		return out
	}
	tree := cluster.Split(set.positions, opts.MinEps, opts.Eps, opts.MinPoints,
		opts.Split == SplitAggressive)
	for _, n := range tree.Selected() {
		out = append(out, Cluster{Set: set, Span: n.Span, Support: n.Support, Stability: n.Stability})
	}
	return out
}
