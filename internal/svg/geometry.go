package svg

import (
	"errors"
	"fmt"

	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
)

// DefaultEpsilon absorbs rendering round-off when comparing coordinates. It
// is not meant to paper over user error; helper lines are drawn at exact
// positions and only drift by floating-point noise.
const DefaultEpsilon = 1e-6

// Point is a 2D coordinate in document space.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Close reports whether each coordinate of p and q differs by at most eps.
func (p Point) Close(q Point, eps float64) bool {
	return p.X >= q.X-eps && p.X <= q.X+eps && p.Y >= q.Y-eps && p.Y <= q.Y+eps
}

// LineSegment is one helper line candidate extracted from a path element.
// Each parse call allocates its own segment; segments are never shared.
type LineSegment struct {
	Start Point
	End   Point
	Color color.RGB
}

// ErrNoSegments is returned by ResolveReferencePoint for an empty input set.
var ErrNoSegments = errors.New("no line segments to resolve a reference point from")

// ResolveReferencePoint finds the point shared by the largest number of
// segment endpoints. Every helper line is anchored at the component's local
// origin by construction, so the most-touched point is that origin; one
// mis-colored or missing line cannot move it.
//
// Endpoints are merged into buckets by the Close predicate (exact equality
// short-circuits the comparison). Ties break toward the bucket that reached
// the maximum count first, in encounter order, so resolution is stable
// across runs.
func ResolveReferencePoint(segments []LineSegment) (Point, error) {
	if len(segments) == 0 {
		return Point{}, ErrNoSegments
	}

	points := make([]Point, 0, 2*len(segments))
	for _, seg := range segments {
		points = append(points, seg.Start, seg.End)
	}

	type bucket struct {
		rep   Point
		count int
	}
	var buckets []bucket

next:
	for _, p := range points {
		for i := range buckets {
			if buckets[i].rep == p || buckets[i].rep.Close(p, DefaultEpsilon) {
				buckets[i].count++
				continue next
			}
		}
		buckets = append(buckets, bucket{rep: p, count: 1})
	}

	best := 0
	for i, b := range buckets {
		if b.count > buckets[best].count {
			best = i
		}
	}
	return buckets[best].rep, nil
}
