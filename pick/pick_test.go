package pick

import (
	"testing"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/strip"
)

func square(x0, y0, size float64) []geom.Vec2 {
	return []geom.Vec2{
		geom.V(x0, y0),
		geom.V(x0+size, y0),
		geom.V(x0+size, y0+size),
		geom.V(x0, y0+size),
	}
}

// TestCase represents a single point containment test
type TestCase struct {
	Name         string
	Point        geom.Vec2
	ExpectInside bool
}

func runTestCases(t *testing.T, m *level.Map, sectorID int, testCases []TestCase) {
	t.Helper()
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := PointInSector(tc.Point, m, sectorID, geom.DefaultEpsilon)
			if got != tc.ExpectInside {
				t.Errorf("Point (%.2f, %.2f): expected inside=%v, got %v",
					tc.Point[0], tc.Point[1], tc.ExpectInside, got)
			}
		})
	}
}

func TestPointInSquareSector(t *testing.T) {
	m := level.New()
	m.AddPolygonSector(0, square(-5, -5, 10))

	runTestCases(t, m, 0, []TestCase{
		{"Point inside box", geom.V(0, 0), true},
		{"Point outside box - far right", geom.V(10, 0), false},
		{"Point outside box - far left", geom.V(-10, 0), false},
		{"Point outside box - far up", geom.V(0, 10), false},
		{"Point outside box - far down", geom.V(0, -10), false},
		{"Point on edge (right wall)", geom.V(5, 0), true},
		{"Point on corner", geom.V(-5, -5), true},
		{"Point near center-right (inside)", geom.V(3, 0), true},
	})
}

func TestPointInLShapedSector(t *testing.T) {
	// L-shaped concave sector
	//   0,4 ---- 2,4
	//     |       |
	//     |   2,2 +---- 4,2
	//     |             |
	//   0,0 -------- 4,0
	m := level.New()
	m.AddPolygonSector(0, []geom.Vec2{
		geom.V(0, 0), geom.V(4, 0), geom.V(4, 2), geom.V(2, 2), geom.V(2, 4), geom.V(0, 4),
	})

	runTestCases(t, m, 0, []TestCase{
		{"Point in lower part of L", geom.V(1, 1), true},
		{"Point in upper part of L", geom.V(1, 3), true},
		{"Point in concave corner (outside)", geom.V(3, 3), false},
		{"Point on ray through reflex vertex", geom.V(1, 2), true},
		{"Point on inner edge", geom.V(3, 2), true},
	})
}

func TestPointInSectorWithoutCleanLoop(t *testing.T) {
	m := level.New()
	m.AddPolygonSector(0, square(0, 0, 10))
	// Reverse one wall; containment only needs the edge set.
	m.Walls[1].V0, m.Walls[1].V1 = m.Walls[1].V1, m.Walls[1].V0

	if !PointInSector(geom.V(5, 5), m, 0, geom.DefaultEpsilon) {
		t.Error("Expected centre to be inside")
	}
	if PointInSector(geom.V(15, 5), m, 0, geom.DefaultEpsilon) {
		t.Error("Expected point right of the square to be outside")
	}
}

func TestEnclosingSectorPrefersSmallest(t *testing.T) {
	m := level.New()
	m.AddPolygonSector(3, square(0, 0, 10))
	m.AddPolygonSector(1, square(2, 2, 2))

	if id, ok := EnclosingSector(geom.V(3, 3), m, geom.DefaultEpsilon); !ok || id != 1 {
		t.Errorf("Expected inner sector 1, got %d (found=%v)", id, ok)
	}
	if id, ok := EnclosingSector(geom.V(8, 8), m, geom.DefaultEpsilon); !ok || id != 3 {
		t.Errorf("Expected outer sector 3, got %d (found=%v)", id, ok)
	}
	if _, ok := EnclosingSector(geom.V(20, 20), m, geom.DefaultEpsilon); ok {
		t.Error("Expected no sector outside the map")
	}
}

func TestEnclosingSectorTieBreak(t *testing.T) {
	for _, order := range [][]int{{7, 2}, {2, 7}} {
		m := level.New()
		for _, id := range order {
			m.AddPolygonSector(id, square(0, 0, 10))
		}
		if id, ok := EnclosingSector(geom.V(5, 5), m, geom.DefaultEpsilon); !ok || id != 2 {
			t.Errorf("Order %v: expected lowest id 2, got %d", order, id)
		}
	}
}

func TestEnclosingSectorNearTieChain(t *testing.T) {
	// Doubled areas 200, 200.00006 and 200.00012: the first two tie with the
	// smallest area, the third does not, so sector 1 wins in every order.
	sizes := map[int]float64{2: 10, 1: 10.0000015, 0: 10.000003}
	orders := [][]int{
		{2, 1, 0}, {2, 0, 1}, {1, 2, 0},
		{1, 0, 2}, {0, 1, 2}, {0, 2, 1},
	}

	for _, order := range orders {
		m := level.New()
		for _, id := range order {
			m.AddPolygonSector(id, square(0, 0, sizes[id]))
		}
		if id, ok := EnclosingSector(geom.V(5, 5), m, geom.DefaultEpsilon); !ok || id != 1 {
			t.Errorf("Order %v: expected sector 1, got %d", order, id)
		}
	}
}

func TestSectorAreaWithoutEdges(t *testing.T) {
	m := level.New()
	m.Sectors = append(m.Sectors, level.Sector{ID: 4})
	if a := SectorArea(m, 4); a <= 1e300 {
		t.Errorf("Expected infinite area, got %f", a)
	}
}

func pickMap() *level.Map {
	m := level.New()
	m.AddPolygonSector(0, square(0, 0, 10))
	return m
}

func TestPickPriority(t *testing.T) {
	tests := []struct {
		name     string
		edit     func(m *level.Map)
		point    geom.Vec2
		expected level.Selection
	}{
		{
			name:     "Sector interior",
			point:    geom.V(5, 5),
			expected: level.Selection{Kind: level.KindSector, Index: 0},
		},
		{
			name:     "Near bottom wall",
			point:    geom.V(5, 0.5),
			expected: level.Selection{Kind: level.KindWall, Index: 0},
		},
		{
			name: "Door beats wall",
			edit: func(m *level.Map) {
				m.Doors = append(m.Doors, level.Door{ID: 12, Wall: 0})
			},
			point:    geom.V(5, 0.5),
			expected: level.Selection{Kind: level.KindDoor, Index: 12},
		},
		{
			name: "Marker beats door",
			edit: func(m *level.Map) {
				m.Doors = append(m.Doors, level.Door{ID: 12, Wall: 0})
				m.Entities = append(m.Entities, level.Entity{Position: level.Vertex{X: 5.8, Y: 0.5}})
			},
			point:    geom.V(5, 0.5),
			expected: level.Selection{Kind: level.KindEntity, Index: 0},
		},
		{
			name: "Marker beats sector",
			edit: func(m *level.Map) {
				m.Particles = append(m.Particles, level.Particle{Position: level.Vertex{X: 5, Y: 5}})
			},
			point:    geom.V(5.5, 5),
			expected: level.Selection{Kind: level.KindParticle, Index: 0},
		},
		{
			name: "Door with missing wall is skipped",
			edit: func(m *level.Map) {
				m.Doors = append(m.Doors, level.Door{ID: 3, Wall: 99})
			},
			point:    geom.V(5, 0.5),
			expected: level.Selection{Kind: level.KindWall, Index: 0},
		},
		{
			name: "Closer marker wins",
			edit: func(m *level.Map) {
				m.Lights = append(m.Lights, level.Light{Position: level.Vertex{X: 5.5, Y: 5}})
				m.Entities = append(m.Entities, level.Entity{Position: level.Vertex{X: 5.2, Y: 5}})
			},
			point:    geom.V(5, 5),
			expected: level.Selection{Kind: level.KindEntity, Index: 0},
		},
		{
			name: "Equidistant markers break ties by identity",
			edit: func(m *level.Map) {
				m.Entities = append(m.Entities, level.Entity{Position: level.Vertex{X: 5, Y: 5}})
				m.Lights = append(m.Lights,
					level.Light{Position: level.Vertex{X: 5, Y: 5}},
					level.Light{Position: level.Vertex{X: 5, Y: 5}},
				)
			},
			point:    geom.V(5, 5),
			expected: level.Selection{Kind: level.KindLight, Index: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pickMap()
			if tt.edit != nil {
				tt.edit(m)
			}
			sel, ok := Pick(m, Query{Point: tt.point, ViewScale: 10})
			if !ok {
				t.Fatal("Expected a selection")
			}
			if sel != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, sel)
			}
			if !sel.Exists(m) {
				t.Errorf("Selection %v does not resolve in the map", sel)
			}
		})
	}
}

func TestPickTexturedStrips(t *testing.T) {
	m := pickMap()
	strips := strip.Compute(m, 2, strip.DefaultOptions())
	point := geom.V(5, 1.5) // 15px from the wall at scale 10

	sel, ok := Pick(m, Query{Point: point, ViewScale: 10, Mode: Wireframe, Strips: strips})
	if !ok || sel.Kind != level.KindSector {
		t.Errorf("Wireframe: expected sector, got %v", sel)
	}

	sel, ok = Pick(m, Query{Point: point, ViewScale: 10, Mode: Textured, Strips: strips})
	if !ok || sel != (level.Selection{Kind: level.KindWall, Index: 0}) {
		t.Errorf("Textured: expected wall 0, got %v", sel)
	}
}

func TestPickNothing(t *testing.T) {
	m := pickMap()
	if sel, ok := Pick(m, Query{Point: geom.V(50, 50), ViewScale: 10}); ok {
		t.Errorf("Expected no selection, got %v", sel)
	}
	if sel, ok := Pick(m, Query{Point: geom.V(5, 5), ViewScale: 0}); ok {
		t.Errorf("Expected no selection for zero view scale, got %v", sel)
	}
}

func TestPickIsDeterministic(t *testing.T) {
	m := pickMap()
	m.Entities = append(m.Entities,
		level.Entity{Position: level.Vertex{X: 5, Y: 5}},
		level.Entity{Position: level.Vertex{X: 5, Y: 5}},
	)
	first, _ := Pick(m, Query{Point: geom.V(5, 5), ViewScale: 10})
	for i := 0; i < 10; i++ {
		if sel, _ := Pick(m, Query{Point: geom.V(5, 5), ViewScale: 10}); sel != first {
			t.Fatalf("Run %d: expected %v, got %v", i, first, sel)
		}
	}
	if first.Index != 0 {
		t.Errorf("Expected lowest index to win the tie, got %v", first)
	}
}
