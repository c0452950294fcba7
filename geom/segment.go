package geom

import "math"

// Contact classifies how two segments meet.
type Contact int

const (
	// NoContact means the segments are disjoint.
	NoContact Contact = iota
	// Crossing means the segments cross at a point interior to both.
	Crossing
	// Touching means an endpoint of one segment lies on the other, including
	// shared endpoints and T-junctions.
	Touching
	// Collinear means the segments are collinear and overlap over a positive
	// length.
	Collinear
)

func (c Contact) String() string {
	switch c {
	case NoContact:
		return "none"
	case Crossing:
		return "crossing"
	case Touching:
		return "touching"
	case Collinear:
		return "collinear"
	}
	return "unknown"
}

// PointSegmentDistance returns the distance from p to the segment a-b. A
// zero-length segment degenerates to the distance between p and a.
func PointSegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.LenSqr()
	if l2 == 0 {
		return Distance(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Distance(p, a.Add(ab.Mul(t)))
}

// IntersectSegments classifies the contact between segments a0-a1 and b0-b1.
// Distances within eps count as contact.
func IntersectSegments(a0, a1, b0, b1 Vec2, eps float64) Contact {
	d1 := a1.Sub(a0)
	d2 := b1.Sub(b0)
	len1 := d1.Len()
	len2 := d2.Len()

	// Degenerate segments behave like points.
	if len1 <= eps && len2 <= eps {
		if Distance(a0, b0) <= eps {
			return Touching
		}
		return NoContact
	}
	if len1 <= eps {
		if PointSegmentDistance(a0, b0, b1) <= eps {
			return Touching
		}
		return NoContact
	}
	if len2 <= eps {
		if PointSegmentDistance(b0, a0, a1) <= eps {
			return Touching
		}
		return NoContact
	}

	denom := Cross(d1, d2)
	offset := b0.Sub(a0)

	if math.Abs(denom) <= eps*len1*len2 {
		// Parallel. Only collinear segments can meet.
		if math.Abs(Cross(offset, d1))/len1 > eps {
			return NoContact
		}
		t0 := offset.Dot(d1) / (len1 * len1)
		t1 := b1.Sub(a0).Dot(d1) / (len1 * len1)
		lo := math.Max(0, math.Min(t0, t1))
		hi := math.Min(1, math.Max(t0, t1))
		overlap := (hi - lo) * len1
		switch {
		case overlap > eps:
			return Collinear
		case overlap >= -eps:
			return Touching
		}
		return NoContact
	}

	t := Cross(offset, d2) / denom
	u := Cross(offset, d1) / denom
	tEps := eps / len1
	uEps := eps / len2
	if t < -tEps || t > 1+tEps || u < -uEps || u > 1+uEps {
		return NoContact
	}
	if t <= tEps || t >= 1-tEps || u <= uEps || u >= 1-uEps {
		return Touching
	}
	return Crossing
}

// SegmentsIntersect reports whether the segments have any contact, counting
// touching and collinear overlap as intersecting.
func SegmentsIntersect(a0, a1, b0, b1 Vec2, eps float64) bool {
	return IntersectSegments(a0, a1, b0, b1, eps) != NoContact
}

// SegmentDistance returns the smallest distance between two segments, zero
// when they intersect.
func SegmentDistance(a0, a1, b0, b1 Vec2, eps float64) float64 {
	if SegmentsIntersect(a0, a1, b0, b1, eps) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDistance(a0, b0, b1), PointSegmentDistance(a1, b0, b1)),
		math.Min(PointSegmentDistance(b0, a0, a1), PointSegmentDistance(b1, a0, a1)),
	)
}

// LineIntersection returns the intersection of the infinite lines p+s*d and
// q+t*e. The second result is false when the lines are parallel within eps.
func LineIntersection(p, d, q, e Vec2, eps float64) (Vec2, bool) {
	denom := Cross(d, e)
	if math.Abs(denom) < eps {
		return Vec2{}, false
	}
	s := Cross(q.Sub(p), e) / denom
	return p.Add(d.Mul(s)), true
}
