package bvh

import (
	"math"

	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
)

// Stats counts the work done by one or more traversals. Counters are
// sum-only: give each worker its own Stats and Merge them afterwards, so
// parallel traversals never contend on shared state.
type Stats struct {
	NodesVisited  int64
	BoxTests      int64
	TriangleTests int64
	Hits          int64
}

// Merge adds o's counts into s.
func (s *Stats) Merge(o Stats) {
	s.NodesVisited += o.NodesVisited
	s.BoxTests += o.BoxTests
	s.TriangleTests += o.TriangleTests
	s.Hits += o.Hits
}

// IntersectRay returns the nearest triangle hit along the ray, or false
// when the ray misses the whole tree.
func (t *Tree) IntersectRay(origin, dir math3d.Vec3) (geometry.Hit, bool) {
	var discard Stats
	return t.IntersectRayStats(origin, dir, &discard)
}

// IntersectRayStats is IntersectRay with instrumentation accumulated
// into stats. Results match a brute-force scan over the same triangles.
func (t *Tree) IntersectRayStats(origin, dir math3d.Vec3, stats *Stats) (geometry.Hit, bool) {
	type entry struct {
		n    *node
		tmin float64
	}

	stats.BoxTests++
	rootT, ok := t.root.bounds.IntersectRay(origin, dir)
	if !ok {
		return geometry.Hit{}, false
	}

	best := geometry.Hit{Distance: math.Inf(1)}
	found := false

	// Iterative traversal, near child first. The far child is pushed
	// below the near one and pruned against the current best distance.
	stack := make([]entry, 0, 64)
	stack = append(stack, entry{t.root, rootT})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.tmin > best.Distance {
			continue
		}
		stats.NodesVisited++

		if e.n.tris != nil {
			for _, tri := range e.n.tris {
				stats.TriangleTests++
				if dist, ok := tri.Intersect(origin, dir); ok && dist < best.Distance {
					best = geometry.Hit{Distance: dist, Triangle: tri}
					found = true
				}
			}
			continue
		}

		stats.BoxTests += 2
		lT, lOK := e.n.left.bounds.IntersectRay(origin, dir)
		rT, rOK := e.n.right.bounds.IntersectRay(origin, dir)
		lOK = lOK && lT <= best.Distance
		rOK = rOK && rT <= best.Distance

		switch {
		case lOK && rOK:
			if lT < rT {
				stack = append(stack, entry{e.n.right, rT}, entry{e.n.left, lT})
			} else {
				stack = append(stack, entry{e.n.left, lT}, entry{e.n.right, rT})
			}
		case lOK:
			stack = append(stack, entry{e.n.left, lT})
		case rOK:
			stack = append(stack, entry{e.n.right, rT})
		}
	}

	if found {
		stats.Hits++
	}
	return best, found
}
