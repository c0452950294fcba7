package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/pick"
	"github.com/bloodmagesoftware/sectorgeo/strip"
	"github.com/xfmoulet/qoi"
)

func squareMap() *level.Map {
	m := level.New()
	m.AddPolygonSector(0, []geom.Vec2{geom.V(0, 0), geom.V(10, 0), geom.V(10, 10), geom.V(0, 10)})
	return m
}

func testOptions() Options {
	return Options{
		Width:     200,
		Height:    200,
		CellSize:  64,
		Mode:      pick.Textured,
		Thickness: 0.5,
		Strip:     strip.DefaultOptions(),
	}
}

func TestRender(t *testing.T) {
	img, err := Render(squareMap(), testOptions())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("Expected 200x200, got %v", b)
	}

	r, g, b, _ := img.At(2, 2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("Expected white background, got %d %d %d", r, g, b)
	}
	r, _, _, _ = img.At(100, 100).RGBA()
	if r >= 0xf000 {
		t.Errorf("Expected filled sector at the center, got red %d", r)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	opts := testOptions()
	opts.Width = 0
	if _, err := Render(squareMap(), opts); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestRenderWithOverlays(t *testing.T) {
	m := squareMap()
	m.Doors = append(m.Doors, level.Door{ID: 3, Wall: 0})
	m.Lights = append(m.Lights, level.Light{Position: level.Vertex{X: 2, Y: 2}})
	// A door on a missing wall is skipped.
	m.Doors = append(m.Doors, level.Door{ID: 4, Wall: 99})

	opts := testOptions()
	opts.Room = []geom.Vec2{geom.V(3, -2), geom.V(7, -2), geom.V(7, 0), geom.V(3, 0)}
	opts.RoomValid = true
	opts.Selected = &level.Selection{Kind: level.KindDoor, Index: 3}

	if _, err := Render(m, opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}

func TestWrite(t *testing.T) {
	img, err := Render(squareMap(), testOptions())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "map.png")
	if err := Write(pngPath, img); err != nil {
		t.Fatalf("Write png failed: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decoding png failed: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}

	qoiPath := filepath.Join(dir, "map.qoi")
	if err := Write(qoiPath, img); err != nil {
		t.Fatalf("Write qoi failed: %v", err)
	}
	q, err := os.Open(qoiPath)
	if err != nil {
		t.Fatal(err)
	}
	defer q.Close()
	decoded, err = qoi.Decode(q)
	if err != nil {
		t.Fatalf("Decoding qoi failed: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}

	if err := Write(filepath.Join(dir, "map.bmp"), img); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
