package level

import "github.com/bloodmagesoftware/sectorgeo/geom"

const (
	minZoom = 0.1
	maxZoom = 10.0
)

// View is the editor camera. The world origin sits at the canvas center,
// shifted by the pan offset; one world unit spans CellSize*Zoom pixels.
type View struct {
	Width    float64 // canvas width in screen pixels
	Height   float64 // canvas height in screen pixels
	CellSize float64 // size of one world unit in screen pixels at zoom 1
	Zoom     float64 // zoom level (1.0 = 100%)
	OffsetX  float64 // camera pan offset X
	OffsetY  float64 // camera pan offset Y
}

// NewView returns a view of the given canvas size with default camera settings.
func NewView(width, height float64) View {
	return View{
		Width:    width,
		Height:   height,
		CellSize: 64.0,
		Zoom:     1.0,
	}
}

// Scale returns the world-to-screen ratio.
func (v View) Scale() float64 {
	return v.CellSize * v.Zoom
}

// WorldToScreen converts a world point to canvas pixels. Screen Y grows
// downwards.
func (v View) WorldToScreen(p geom.Vec2) geom.Vec2 {
	s := v.Scale()
	return geom.V(
		v.Width/2+v.OffsetX+p[0]*s,
		v.Height/2+v.OffsetY-p[1]*s,
	)
}

// ScreenToWorld converts canvas pixels to a world point.
func (v View) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	s := v.Scale()
	return geom.V(
		(p[0]-v.Width/2-v.OffsetX)/s,
		-(p[1]-v.Height/2-v.OffsetY)/s,
	)
}

// ZoomAt changes the zoom by factor while keeping the world point under the
// screen position fixed.
func (v View) ZoomAt(factor float64, screen geom.Vec2) View {
	newZoom := v.Zoom * factor
	if newZoom < minZoom {
		newZoom = minZoom
	}
	if newZoom > maxZoom {
		newZoom = maxZoom
	}

	// Mouse position relative to center
	relX := screen[0] - v.Width/2
	relY := screen[1] - v.Height/2

	ratio := newZoom / v.Zoom
	v.OffsetX = (v.OffsetX-relX)*ratio + relX
	v.OffsetY = (v.OffsetY-relY)*ratio + relY
	v.Zoom = newZoom
	return v
}

// Fit returns a view that centers the bounding box of m with a margin of
// marginPx pixels on each side. Maps without vertices keep the default view.
func (v View) Fit(m *Map, marginPx float64) View {
	if len(m.Vertices) == 0 {
		return v
	}
	poly := make([]geom.Vec2, len(m.Vertices))
	for i, vx := range m.Vertices {
		poly[i] = vx.Vec()
	}
	b := geom.Bound(poly)
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	availW := v.Width - 2*marginPx
	availH := v.Height - 2*marginPx
	if availW <= 0 || availH <= 0 {
		return v
	}
	scale := availW / w
	if availH/h < scale {
		scale = availH / h
	}
	v.Zoom = scale / v.CellSize

	cx := (b.Min[0] + b.Max[0]) / 2
	cy := (b.Min[1] + b.Max[1]) / 2
	v.OffsetX = -cx * scale
	v.OffsetY = cy * scale
	return v
}
