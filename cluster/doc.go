// Package cluster implements univariate density clustering of sorted
// integer genomic positions.
//
// Flat finds maximal runs of positions in which every adjacent gap is
// at most epsilon; runs with fewer than a minimum number of members
// are treated as noise and dropped. Split refines the flat clusters
// hierarchically: each cluster is re-clustered at successively smaller
// epsilon values to expose nested sub-clusters, and a stability score
// (persistence across epsilon times member count) decides whether the
// parent or its children are reported.
//
// Both engines operate on index spans into the caller's sorted
// position slice, so no positions are copied and results can be mapped
// back onto richer per-position records by the caller.
package cluster
