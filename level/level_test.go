package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloodmagesoftware/sectorgeo/geom"
)

func sampleMap() *Map {
	m := New()
	m.AddPolygonSector(0, []geom.Vec2{geom.V(0, 0), geom.V(4, 0), geom.V(4, 4), geom.V(0, 4)})
	m.AddPolygonSector(3, []geom.Vec2{geom.V(4, 0), geom.V(8, 0), geom.V(8, 4), geom.V(4, 4)})
	m.Doors = append(m.Doors, Door{ID: 7, Wall: 1, OpenHeight: 1, Speed: 2})
	m.Lights = append(m.Lights, Light{Position: Vertex{X: 2, Y: 2}, Radius: 3, Intensity: 1})
	m.Entities = append(m.Entities, Entity{Position: Vertex{X: 6, Y: 2}, Class: "player_start"})
	return m
}

func TestAddPolygonSectorReusesVertices(t *testing.T) {
	m := sampleMap()

	if len(m.Vertices) != 6 {
		t.Errorf("Expected 6 vertices, got %d", len(m.Vertices))
	}
	if len(m.Walls) != 8 {
		t.Fatalf("Expected 8 walls, got %d", len(m.Walls))
	}
	// The second square's left wall runs back over the shared edge.
	if m.Walls[7].V0 != 2 || m.Walls[7].V1 != 1 {
		t.Errorf("Expected wall 7 from vertex 2 to 1, got %d to %d", m.Walls[7].V0, m.Walls[7].V1)
	}
	for i, w := range m.Walls {
		if w.BackSector != NoSector {
			t.Errorf("Wall %d: expected solid back, got %d", i, w.BackSector)
		}
	}
	if got := m.NextSectorID(); got != 4 {
		t.Errorf("Expected next sector id 4, got %d", got)
	}
}

func TestWallSegment(t *testing.T) {
	m := sampleMap()
	m.Walls = append(m.Walls, Wall{V0: 0, V1: 99, FrontSector: NoSector, BackSector: NoSector})

	tests := []struct {
		name string
		wall int
		ok   bool
	}{
		{"First wall", 0, true},
		{"Negative index", -1, false},
		{"Past the end", len(m.Walls), false},
		{"Missing vertex", len(m.Walls) - 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, ok := m.WallSegment(tc.wall)
			if ok != tc.ok {
				t.Errorf("Expected ok=%v, got %v", tc.ok, ok)
			}
		})
	}

	a, b, _ := m.WallSegment(0)
	if a != geom.V(0, 0) || b != geom.V(4, 0) {
		t.Errorf("Expected (0,0)-(4,0), got %v-%v", a, b)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels", "test.yaml")
	m := sampleMap()
	m.Walls[1].DoorLinked = true

	if err := m.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Walls) != len(m.Walls) || len(loaded.Sectors) != 2 {
		t.Fatalf("Expected %d walls and 2 sectors, got %d and %d", len(m.Walls), len(loaded.Walls), len(loaded.Sectors))
	}
	if loaded.Walls[0].BackSector != NoSector {
		t.Errorf("Expected solid back sector, got %d", loaded.Walls[0].BackSector)
	}
	if !loaded.Walls[1].DoorLinked || loaded.Walls[0].DoorLinked {
		t.Errorf("Expected only wall 1 to be door linked")
	}
	if loaded.Doors[0].ID != 7 || loaded.Entities[0].Class != "player_start" {
		t.Errorf("Expected door 7 and a player_start entity, got %+v and %+v", loaded.Doors[0], loaded.Entities[0])
	}
}

func TestEncodeOmitsEmptyLists(t *testing.T) {
	m := New()
	m.AddPolygonSector(0, []geom.Vec2{geom.V(0, 0), geom.V(1, 0), geom.V(0, 1)})

	var sb strings.Builder
	if err := m.Encode(&sb); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := sb.String()
	for _, key := range []string{"doors:", "lights:", "particles:", "entities:"} {
		if strings.Contains(out, key) {
			t.Errorf("Expected %q to be omitted:\n%s", key, out)
		}
	}
	if !strings.Contains(out, "\n    - v0: 0") {
		t.Errorf("Expected 4-space indentation:\n%s", out)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("walls: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("Expected decode error naming %s, got %v", bad, err)
	}
}

func TestSelectionExists(t *testing.T) {
	m := sampleMap()

	tests := []struct {
		sel  Selection
		want bool
	}{
		{Selection{KindSector, 3}, true},
		{Selection{KindSector, 1}, false},
		{Selection{KindWall, 7}, true},
		{Selection{KindWall, 8}, false},
		{Selection{KindDoor, 7}, true},
		{Selection{KindDoor, 0}, false},
		{Selection{KindLight, 0}, true},
		{Selection{KindParticle, 0}, false},
		{Selection{KindEntity, 0}, true},
		{Selection{KindEntity, -1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.sel.String(), func(t *testing.T) {
			if got := tc.sel.Exists(m); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSelectionUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unknown kind")
		}
	}()
	Selection{Kind: Kind(42)}.Exists(New())
}

func TestViewRoundTrip(t *testing.T) {
	v := NewView(800, 600)
	v.OffsetX = 30
	v.OffsetY = -20

	tests := []geom.Vec2{geom.V(0, 0), geom.V(3.5, -2), geom.V(-10, 7)}
	for _, p := range tests {
		back := v.ScreenToWorld(v.WorldToScreen(p))
		if !geom.NearlyEqual(back[0], p[0], 1e-9) || !geom.NearlyEqual(back[1], p[1], 1e-9) {
			t.Errorf("Expected %v, got %v", p, back)
		}
	}

	// World origin sits at the canvas center, Y grows upwards in world space.
	if got := NewView(800, 600).WorldToScreen(geom.V(1, 1)); got != geom.V(464, 236) {
		t.Errorf("Expected (464, 236), got %v", got)
	}
}

func TestViewZoomAtKeepsPointFixed(t *testing.T) {
	v := NewView(800, 600)
	screen := geom.V(600, 100)
	before := v.ScreenToWorld(screen)

	v = v.ZoomAt(2, screen)
	after := v.ScreenToWorld(screen)
	if !geom.NearlyEqual(before[0], after[0], 1e-9) || !geom.NearlyEqual(before[1], after[1], 1e-9) {
		t.Errorf("Expected %v under the cursor, got %v", before, after)
	}
	if v.Zoom != 2 {
		t.Errorf("Expected zoom 2, got %f", v.Zoom)
	}

	if got := v.ZoomAt(1000, screen).Zoom; got != maxZoom {
		t.Errorf("Expected zoom clamped to %f, got %f", maxZoom, got)
	}
}

func TestViewFit(t *testing.T) {
	m := sampleMap()
	v := NewView(1000, 600).Fit(m, 100)

	// 8x4 map in an 800x400 area: the height limits the scale to 100.
	if !geom.NearlyEqual(v.Scale(), 100, 1e-9) {
		t.Errorf("Expected scale 100, got %f", v.Scale())
	}
	center := v.WorldToScreen(geom.V(4, 2))
	if !geom.NearlyEqual(center[0], 500, 1e-9) || !geom.NearlyEqual(center[1], 300, 1e-9) {
		t.Errorf("Expected map center at (500, 300), got %v", center)
	}
}
