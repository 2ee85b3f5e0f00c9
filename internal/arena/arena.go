// Package arena provides a bump-allocated scratch region, bulk-reset
// between layer iterations (spec §2 row A, §4.4, §5, §9 "Bump arena").
//
// Unlike the unsafe, GC-aware chunk arena this is conceptually modeled
// on, this Arena holds only plain Go values behind ordinary slices: it
// buys back reuse of the backing storage across Reset calls without any
// unsafe.Pointer bookkeeping, at the cost of the allocations it hands
// out being tied to Go's own GC rather than bypassing it. That trade is
// the right one here — per spec §9, the per-worker arena only needs to
// avoid cross-layer retention and per-call malloc churn, not escape the
// garbage collector entirely.
package arena

// Arena is a thread-local bump allocator: never share one across
// goroutines (spec §5, "The arena is thread-local; never shared").
//
// A zero Arena is empty and ready to use.
type Arena struct {
	points     []point2
	points3    []point3
	ints       []int
	generation int
}

type point2 struct{ X, Y float64 }
type point3 struct{ X, Y, Z float64 }

// Reset discards every allocation made since the last Reset (or since
// construction) by truncating the backing slices to zero length,
// keeping their capacity for reuse (spec §4.4: "Reset the scratch
// arena" at the start of every layer iteration).
func (a *Arena) Reset() {
	a.points = a.points[:0]
	a.points3 = a.points3[:0]
	a.ints = a.ints[:0]
	a.generation++
}

// Point2 allocates n scratch 2D points, zero-valued, returning a slice
// backed by the arena that is only valid until the next Reset.
func (a *Arena) Point2(n int) []point2 {
	start := len(a.points)
	a.points = appendN(a.points, n)
	return a.points[start:]
}

// Point3 allocates n scratch 3D points.
func (a *Arena) Point3(n int) []point3 {
	start := len(a.points3)
	a.points3 = appendN(a.points3, n)
	return a.points3[start:]
}

// Ints allocates n scratch ints, used by callers that need a temporary
// index buffer (e.g. a triangulator's ear-tip candidate list).
func (a *Arena) Ints(n int) []int {
	start := len(a.ints)
	a.ints = appendN(a.ints, n)
	return a.ints[start:]
}

// Generation returns the number of times Reset has been called,
// exposed so tests can assert that a value handed out before a Reset is
// never read after it.
func (a *Arena) Generation() int { return a.generation }

func appendN[T any](s []T, n int) []T {
	if n <= 0 {
		return s
	}
	var zero T
	for i := 0; i < n; i++ {
		s = append(s, zero)
	}
	return s
}
