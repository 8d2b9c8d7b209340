package cluster

import (
	"v.io/x/lib/vlog"
)

// Span is a half-open [Lo, Hi) index range into the position slice a
// cluster was computed from. Returning spans rather than position
// copies lets callers slice their own backing arrays and recover
// per-position metadata.
type Span struct {
	Lo, Hi int
}

// Len returns the number of member positions in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// checkInput panics if points is unsorted or the clustering parameters
// are out of range. Callers validate user-supplied configuration
// before reaching this package, so a failure here is a programming
// error.
func checkInput(points []int, eps, minPoints int) {
	if eps < 0 {
		vlog.Panicf("cluster: negative epsilon %d", eps)
	}
	if minPoints < 1 {
		vlog.Panicf("cluster: non-positive minimum points %d", minPoints)
	}
	for i := 1; i < len(points); i++ {
		if points[i] < points[i-1] {
			vlog.Panicf("cluster: unsorted input at index %d: %d < %d", i, points[i], points[i-1])
		}
	}
}

// Flat partitions sorted positions into maximal clusters in which
// every adjacent gap is <= eps, equivalent to connected components of
// the interval graph with edge threshold eps. Clusters with fewer than
// minPoints members are dropped; callers that need noise points can
// pass minPoints == 1 and filter the result themselves. Duplicate
// positions are distinct members separated by a gap of zero.
//
// The returned spans are disjoint and ordered by position. An empty
// input yields a nil result.
//
// REQUIRES: points is sorted in ascending order.
func Flat(points []int, eps, minPoints int) []Span {
	checkInput(points, eps, minPoints)
	var spans []Span
	lo := 0
	for i := 1; i <= len(points); i++ {
		if i == len(points) || points[i]-points[i-1] > eps {
			if i-lo >= minPoints {
				spans = append(spans, Span{lo, i})
			}
			lo = i
		}
	}
	return spans
}

// maxGap returns the largest gap between adjacent members, or zero for
// fewer than two members.
func maxGap(points []int) int {
	widest := 0
	for i := 1; i < len(points); i++ {
		if g := points[i] - points[i-1]; g > widest {
			widest = g
		}
	}
	return widest
}
