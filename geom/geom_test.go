package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNormalize(t *testing.T) {
	v, ok := Normalize(V(3, 4))
	if !ok {
		t.Fatal("Expected (3, 4) to have a direction")
	}
	if !NearlyEqual(v.Len(), 1, 1e-12) {
		t.Errorf("Expected unit length, got %f", v.Len())
	}

	if _, ok := Normalize(V(1e-9, 0)); ok {
		t.Error("Expected vector shorter than 1e-8 to have no direction")
	}
}

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name     string
		p, a, b  Vec2
		expected float64
	}{
		{"Perpendicular foot inside", V(5, 3), V(0, 0), V(10, 0), 3},
		{"Beyond end", V(13, 4), V(0, 0), V(10, 0), 5},
		{"Before start", V(-3, 0), V(0, 0), V(10, 0), 3},
		{"Zero-length segment", V(3, 4), V(0, 0), V(0, 0), 5},
		{"On segment", V(2, 0), V(0, 0), V(10, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointSegmentDistance(tt.p, tt.a, tt.b)
			if !NearlyEqual(got, tt.expected, 1e-9) {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestIntersectSegments(t *testing.T) {
	tests := []struct {
		name           string
		a0, a1, b0, b1 Vec2
		expected       Contact
	}{
		{"Proper crossing", V(0, 0), V(10, 10), V(0, 10), V(10, 0), Crossing},
		{"Disjoint", V(0, 0), V(1, 0), V(0, 1), V(1, 1), NoContact},
		{"Shared endpoint", V(0, 0), V(10, 0), V(10, 0), V(10, 10), Touching},
		{"T-junction", V(0, 0), V(10, 0), V(5, 0), V(5, 5), Touching},
		{"Collinear overlap", V(0, 0), V(10, 0), V(5, 0), V(15, 0), Collinear},
		{"Collinear end to end", V(0, 0), V(10, 0), V(10, 0), V(20, 0), Touching},
		{"Collinear apart", V(0, 0), V(10, 0), V(11, 0), V(20, 0), NoContact},
		{"Parallel offset", V(0, 0), V(10, 0), V(0, 1), V(10, 1), NoContact},
		{"Would cross beyond end", V(0, 0), V(1, 1), V(0, 10), V(10, 0), NoContact},
		{"Point on segment", V(3, 0), V(3, 0), V(0, 0), V(10, 0), Touching},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntersectSegments(tt.a0, tt.a1, tt.b0, tt.b1, DefaultEpsilon)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			// Contact is symmetric.
			if rev := IntersectSegments(tt.b0, tt.b1, tt.a0, tt.a1, DefaultEpsilon); rev != got {
				t.Errorf("Expected symmetric result %v, got %v", got, rev)
			}
		})
	}
}

func TestSegmentDistance(t *testing.T) {
	if d := SegmentDistance(V(0, 0), V(10, 0), V(5, -5), V(5, 5), DefaultEpsilon); d != 0 {
		t.Errorf("Expected crossing segments at distance 0, got %f", d)
	}
	if d := SegmentDistance(V(0, 0), V(10, 0), V(3, 2), V(7, 2), DefaultEpsilon); !NearlyEqual(d, 2, 1e-9) {
		t.Errorf("Expected distance 2, got %f", d)
	}
}

func TestLineClassify(t *testing.T) {
	line, ok := LineThrough(V(0, 0), V(10, 0))
	if !ok {
		t.Fatal("Expected a line")
	}
	if c := line.Classify(V(5, 1), DefaultEpsilon); c != 1 {
		t.Errorf("Expected point above a left-to-right line in front, got %d", c)
	}
	if c := line.Classify(V(5, -1), DefaultEpsilon); c != -1 {
		t.Errorf("Expected point below in back, got %d", c)
	}
	if c := line.Classify(V(20, 0), DefaultEpsilon); c != 0 {
		t.Errorf("Expected point on line, got %d", c)
	}
	if _, ok := LineThrough(V(1, 1), V(1, 1)); ok {
		t.Error("Expected no line through coincident points")
	}
}

func TestPolygonWinding(t *testing.T) {
	ccw := []Vec2{V(0, 0), V(4, 0), V(4, 2), V(0, 2)}
	cw := []Vec2{V(0, 0), V(0, 2), V(4, 2), V(4, 0)}

	if a := SignedArea(ccw); !NearlyEqual(a, 8, 1e-12) {
		t.Errorf("Expected area 8, got %f", a)
	}
	if a := SignedArea(cw); !NearlyEqual(a, -8, 1e-12) {
		t.Errorf("Expected area -8, got %f", a)
	}
	if o := Orientation(ccw); o != orb.CCW {
		t.Errorf("Expected CCW, got %v", o)
	}
	if o := Orientation(cw); o != orb.CW {
		t.Errorf("Expected CW, got %v", o)
	}
	if a := SignedArea(EnsureCCW(cw)); a <= 0 {
		t.Errorf("Expected EnsureCCW to produce positive area, got %f", a)
	}
}

func TestBound(t *testing.T) {
	b := Bound([]Vec2{V(-1, 2), V(3, -4), V(0, 5)})
	if b.Min[0] != -1 || b.Min[1] != -4 || b.Max[0] != 3 || b.Max[1] != 5 {
		t.Errorf("Unexpected bound %v", b)
	}
}

func TestPointInPolygon(t *testing.T) {
	// L-shaped concave polygon
	//   0,4 ---- 2,4
	//     |       |
	//     |   2,2 +---- 4,2
	//     |             |
	//   0,0 -------- 4,0
	lShape := []Vec2{V(0, 0), V(4, 0), V(4, 2), V(2, 2), V(2, 4), V(0, 4)}

	tests := []struct {
		name     string
		point    Vec2
		expected bool
	}{
		{"Lower part of L", V(1, 1), true},
		{"Upper part of L", V(1, 3), true},
		{"Concave corner", V(3, 3), false},
		{"Far outside", V(-5, 0), false},
		{"On edge", V(4, 1), true},
		{"On vertex", V(2, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.point, lShape, DefaultEpsilon, true); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if PointInPolygon(V(4, 1), lShape, DefaultEpsilon, false) {
		t.Error("Expected boundary point to be outside when boundary is excluded")
	}
}

func TestLineIntersection(t *testing.T) {
	p, ok := LineIntersection(V(0, 1), V(1, 0), V(3, 0), V(0, 1), 1e-9)
	if !ok {
		t.Fatal("Expected perpendicular lines to intersect")
	}
	if !NearlyEqual(p[0], 3, 1e-12) || !NearlyEqual(p[1], 1, 1e-12) {
		t.Errorf("Expected (3, 1), got %v", p)
	}
	if _, ok := LineIntersection(V(0, 0), V(1, 0), V(0, 1), V(2, 0), 1e-9); ok {
		t.Error("Expected parallel lines not to intersect")
	}
}
