package fingerprint

import (
	"sort"
)

// CategoryCount pairs a repeat-family category with a read-tip count.
type CategoryCount struct {
	Category string
	Count    int
}

// SampleSummary reports one sample's contribution to a joined locus.
type SampleSummary struct {
	Sample string
	// Count is the total clustered read tips from this sample.
	Count int
	// Common lists the sample's most common categories, by descending
	// count and then ascending category identifier.
	Common []CategoryCount
}

// summarize reduces the member clusters of a joined locus to
// per-sample category counts. It returns the summaries of samples with
// at least one supporting tip in ascending sample order, the most
// common category across all samples, and the largest single-sample
// share of that category's total count. These are pure reductions over
// the member points; pairing policy never feeds into them.
func summarize(members []Cluster, nCommon int) (samples []SampleSummary, topCategory string, maxProportion float64) {
	perSample := map[string]map[string]int{}
	totals := map[string]int{}
	for _, c := range members {
		m := perSample[c.Set.Sample]
		if m == nil {
			m = map[string]int{}
			perSample[c.Set.Sample] = m
		}
		m[c.Set.Category] += c.Count()
		totals[c.Set.Category] += c.Count()
	}
	if len(totals) == 0 {
		return nil, "", 0
	}

	for category, n := range totals {
		if topCategory == "" || n > totals[topCategory] ||
			(n == totals[topCategory] && category < topCategory) {
			topCategory = category
		}
	}

	names := make([]string, 0, len(perSample))
	for sample := range perSample {
		names = append(names, sample)
	}
	sort.Strings(names)

	maxShared := 0
	for _, sample := range names {
		counts := perSample[sample]
		summary := SampleSummary{Sample: sample}
		for category, n := range counts {
			summary.Count += n
			summary.Common = append(summary.Common, CategoryCount{category, n})
		}
		sort.Slice(summary.Common, func(i, j int) bool {
			if summary.Common[i].Count != summary.Common[j].Count {
				return summary.Common[i].Count > summary.Common[j].Count
			}
			return summary.Common[i].Category < summary.Common[j].Category
		})
		if len(summary.Common) > nCommon {
			summary.Common = summary.Common[:nCommon]
		}
		if n := counts[topCategory]; n > maxShared {
			maxShared = n
		}
		samples = append(samples, summary)
	}
	maxProportion = float64(maxShared) / float64(totals[topCategory])
	return samples, topCategory, maxProportion
}
