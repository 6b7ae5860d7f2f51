// Package bvh provides a bounding volume hierarchy over triangle meshes,
// built with a binned surface-area heuristic and queried by nearest-hit
// ray traversal.
package bvh

import (
	"errors"
	"sort"

	"glyphcast/pkg/geometry"
)

// ErrEmpty is returned when building over an empty triangle list.
var ErrEmpty = errors.New("bvh: empty triangle list")

// Options controls tree construction.
type Options struct {
	// MaxLeafSize is the triangle count below which a leaf is emitted.
	MaxLeafSize int
	// MaxDepth bounds the tree depth; recursion stops there regardless
	// of triangle count.
	MaxDepth int
	// Buckets is the number of centroid bins evaluated per split.
	Buckets int
	// TraversalCost is the SAH cost of visiting an interior node,
	// relative to one triangle intersection.
	TraversalCost float64
}

// DefaultOptions returns the build parameters used when none are given.
func DefaultOptions() Options {
	return Options{
		MaxLeafSize:   4,
		MaxDepth:      20,
		Buckets:       12,
		TraversalCost: 1.0,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxLeafSize <= 0 {
		o.MaxLeafSize = d.MaxLeafSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.Buckets <= 1 {
		o.Buckets = d.Buckets
	}
	if o.TraversalCost <= 0 {
		o.TraversalCost = d.TraversalCost
	}
	return o
}

// node is either a leaf (tris non-nil) or an interior node with two
// children. Every input triangle lands in exactly one leaf.
type node struct {
	bounds      geometry.AABB
	left, right *node
	tris        []geometry.Triangle
}

// Tree is an immutable BVH over a triangle list. Built once, it is safe
// to query concurrently from multiple goroutines.
type Tree struct {
	root   *node
	opts   Options
	bounds geometry.AABB
	count  int
}

// Build constructs a BVH over the given triangles. The slice is copied.
// An empty list is a construction error, not an empty tree.
func Build(tris []geometry.Triangle, opts Options) (*Tree, error) {
	if len(tris) == 0 {
		return nil, ErrEmpty
	}
	opts = opts.withDefaults()

	owned := make([]geometry.Triangle, len(tris))
	copy(owned, tris)

	root := build(owned, 0, opts)
	return &Tree{
		root:   root,
		opts:   opts,
		bounds: root.bounds,
		count:  len(owned),
	}, nil
}

// FromMesh builds a BVH over a mesh's triangles with default options.
func FromMesh(m *geometry.Mesh) (*Tree, error) {
	return Build(m.Triangles(), DefaultOptions())
}

// Bounds returns the bounding box of the whole tree.
func (t *Tree) Bounds() geometry.AABB {
	return t.bounds
}

// TriangleCount returns the number of triangles stored in the tree.
func (t *Tree) TriangleCount() int {
	return t.count
}

func triangleBounds(tris []geometry.Triangle) geometry.AABB {
	b := geometry.EmptyAABB()
	for _, tri := range tris {
		b = b.Union(tri.Bounds())
	}
	return b
}

// build recursively partitions tris. It owns the slice and may reorder it.
func build(tris []geometry.Triangle, depth int, opts Options) *node {
	bounds := triangleBounds(tris)
	n := len(tris)

	if n <= opts.MaxLeafSize || depth >= opts.MaxDepth {
		return &node{bounds: bounds, tris: tris}
	}

	// Centroid bounds pick the split axis; if all centroids coincide
	// there is nothing to separate on.
	cb := geometry.EmptyAABB()
	for _, tri := range tris {
		cb = cb.ExtendPoint(tri.Centroid())
	}
	axis := cb.LongestAxis()
	cmin := cb.Min.Axis(axis)
	cext := cb.Max.Axis(axis) - cmin
	if cext <= 1e-12 {
		left, right := medianSplit(tris, axis)
		return &node{
			bounds: bounds,
			left:   build(left, depth+1, opts),
			right:  build(right, depth+1, opts),
		}
	}

	// Bin triangle centroids along the axis.
	type bucket struct {
		count  int
		bounds geometry.AABB
	}
	buckets := make([]bucket, opts.Buckets)
	for i := range buckets {
		buckets[i].bounds = geometry.EmptyAABB()
	}
	bucketOf := func(tri geometry.Triangle) int {
		b := int(float64(opts.Buckets) * (tri.Centroid().Axis(axis) - cmin) / cext)
		if b >= opts.Buckets {
			b = opts.Buckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}
	for _, tri := range tris {
		b := bucketOf(tri)
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(tri.Bounds())
	}

	// Sweep every candidate split between adjacent buckets and score it
	// with the surface-area heuristic: traversal cost plus each side's
	// intersection cost weighted by its box area over the parent's.
	parentArea := bounds.SurfaceArea()
	if parentArea <= 0 {
		parentArea = 1
	}

	nSplits := opts.Buckets - 1
	leftCounts := make([]int, nSplits)
	leftAreas := make([]float64, nSplits)
	{
		count := 0
		acc := geometry.EmptyAABB()
		for i := 0; i < nSplits; i++ {
			count += buckets[i].count
			acc = acc.Union(buckets[i].bounds)
			leftCounts[i] = count
			leftAreas[i] = acc.SurfaceArea()
		}
	}
	bestSplit := -1
	bestCost := 0.0
	{
		count := 0
		acc := geometry.EmptyAABB()
		for i := nSplits; i >= 1; i-- {
			count += buckets[i].count
			acc = acc.Union(buckets[i].bounds)
			nL := leftCounts[i-1]
			nR := count
			if nL == 0 || nR == 0 {
				continue
			}
			cost := opts.TraversalCost +
				(leftAreas[i-1]/parentArea)*float64(nL) +
				(acc.SurfaceArea()/parentArea)*float64(nR)
			if bestSplit < 0 || cost < bestCost {
				bestSplit = i - 1
				bestCost = cost
			}
		}
	}

	leafCost := float64(n)
	if bestSplit < 0 {
		// All triangles fell into one bucket; force progress.
		left, right := medianSplit(tris, axis)
		return &node{
			bounds: bounds,
			left:   build(left, depth+1, opts),
			right:  build(right, depth+1, opts),
		}
	}
	if bestCost >= leafCost && n < 2*opts.MaxLeafSize {
		// Splitting would not pay off for a node this small. Larger
		// nodes split anyway so leaf sizes stay bounded by the
		// configured threshold.
		return &node{bounds: bounds, tris: tris}
	}

	// Partition in place around the chosen bucket boundary.
	mid := 0
	for i := range tris {
		if bucketOf(tris[i]) <= bestSplit {
			tris[mid], tris[i] = tris[i], tris[mid]
			mid++
		}
	}
	if mid == 0 || mid == n {
		left, right := medianSplit(tris, axis)
		return &node{
			bounds: bounds,
			left:   build(left, depth+1, opts),
			right:  build(right, depth+1, opts),
		}
	}

	return &node{
		bounds: bounds,
		left:   build(tris[:mid], depth+1, opts),
		right:  build(tris[mid:], depth+1, opts),
	}
}

// medianSplit sorts tris by centroid along axis and halves the list.
// Used as the fallback when binning produces a degenerate split, so the
// build always terminates.
func medianSplit(tris []geometry.Triangle, axis int) ([]geometry.Triangle, []geometry.Triangle) {
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].Centroid().Axis(axis) < tris[j].Centroid().Axis(axis)
	})
	mid := len(tris) / 2
	return tris[:mid], tris[mid:]
}
