package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Line represents a 2D line using the plane equation: Normal · Point = Distance
type Line struct {
	Normal   Vec2
	Distance float64
}

// LineThrough returns the line through a and b with its normal pointing to the
// left of a->b. It fails when a and b coincide.
func LineThrough(a, b Vec2) (Line, bool) {
	dir, ok := Normalize(b.Sub(a))
	if !ok {
		return Line{}, false
	}
	n := Perp(dir)
	return Line{Normal: n, Distance: n.Dot(a)}, true
}

// PointSide returns the signed distance of p from the line.
// Returns: > 0 for front, < 0 for back, 0 for on the line
func (l Line) PointSide(p Vec2) float64 {
	return l.Normal.Dot(p) - l.Distance
}

// Classify returns 1 for front, -1 for back, 0 for on the line
func (l Line) Classify(p Vec2, eps float64) int {
	side := l.PointSide(p)
	if side > eps {
		return 1
	} else if side < -eps {
		return -1
	}
	return 0
}

// DoubledArea returns twice the signed area of the polygon.
// Positive = CCW, Negative = CW
func DoubledArea(poly []Vec2) float64 {
	if len(poly) < 3 {
		return 0
	}
	var area float64
	n := len(poly)
	for i := 0; i < n; i++ {
		area += Cross(poly[i], poly[(i+1)%n])
	}
	return area
}

// SignedArea computes the signed area of a polygon
func SignedArea(poly []Vec2) float64 {
	return DoubledArea(poly) / 2
}

// EnsureCCW returns the polygon with counter-clockwise winding order, reversing
// a copy when it is clockwise.
func EnsureCCW(poly []Vec2) []Vec2 {
	if DoubledArea(poly) >= 0 {
		return poly
	}
	n := len(poly)
	reversed := make([]Vec2, n)
	for i := range poly {
		reversed[i] = poly[n-1-i]
	}
	return reversed
}

// Ring converts an open polygon into a closed orb ring.
func Ring(poly []Vec2) orb.Ring {
	ring := make(orb.Ring, 0, len(poly)+1)
	for _, p := range poly {
		ring = append(ring, orb.Point(p))
	}
	if len(poly) > 0 {
		ring = append(ring, orb.Point(poly[0]))
	}
	return ring
}

// Orientation reports the winding of the polygon. Degenerate polygons have
// zero orientation.
func Orientation(poly []Vec2) orb.Orientation {
	if len(poly) < 3 {
		return 0
	}
	return Ring(poly).Orientation()
}

// Bound returns the axis-aligned bounding box of the polygon.
func Bound(poly []Vec2) orb.Bound {
	return Ring(poly).Bound()
}

// Centroid returns the vertex average of the polygon.
func Centroid(poly []Vec2) Vec2 {
	var sum Vec2
	if len(poly) == 0 {
		return sum
	}
	for _, p := range poly {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(poly)))
}

// Translate returns a copy of poly moved by offset.
func Translate(poly []Vec2, offset Vec2) []Vec2 {
	out := make([]Vec2, len(poly))
	for i, p := range poly {
		out[i] = p.Add(offset)
	}
	return out
}

// PointInPolygon reports whether p lies inside poly using ray casting. Points
// within eps of an edge count as inside when boundaryInside is true and as
// outside otherwise.
func PointInPolygon(p Vec2, poly []Vec2, eps float64, boundaryInside bool) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if PointSegmentDistance(p, a, b) <= eps {
			return boundaryInside
		}
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := a[0] + (p[1]-a[1])*(b[0]-a[0])/(b[1]-a[1])
			if p[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}

// AxisAligned reports whether the segment a-b is horizontal or vertical within
// eps.
func AxisAligned(a, b Vec2, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps || math.Abs(a[1]-b[1]) <= eps
}
