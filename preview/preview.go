// Package preview rasterises a map snapshot: sector fills, wall strips, wall
// lines, doors and markers, plus an optional candidate room.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/sectorgeo/boundary"
	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/pick"
	"github.com/bloodmagesoftware/sectorgeo/strip"
	"github.com/gogpu/gg"
	"github.com/xfmoulet/qoi"
)

const (
	marginPx     = 24.0
	markerRadius = 4.0
	doorRadius   = 5.0
)

type Options struct {
	Width    int
	Height   int
	CellSize float64
	Mode     pick.RenderMode
	// Thickness and Strip configure wall strips in textured mode.
	Thickness float64
	Strip     strip.Options
	// Room is an optional candidate room outline; RoomValid selects its color.
	Room      []geom.Vec2
	RoomValid bool
	// Selected is highlighted when set.
	Selected *level.Selection
}

// View returns the camera used by Render: the whole map fitted into the
// canvas.
func (o Options) View(m *level.Map) level.View {
	v := level.NewView(float64(o.Width), float64(o.Height))
	if o.CellSize > 0 {
		v.CellSize = o.CellSize
	}
	return v.Fit(m, marginPx)
}

type renderer struct {
	dc   *gg.Context
	view level.View
	m    *level.Map
}

// Render draws m into a new image.
func Render(m *level.Map, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opts.Width, opts.Height)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	r := &renderer{dc: dc, view: opts.View(m), m: m}
	steps := []struct {
		name string
		draw func(Options) error
	}{
		{"sectors", r.sectors},
		{"strips", r.strips},
		{"walls", r.walls},
		{"doors", r.doors},
		{"markers", r.markers},
		{"room", r.room},
		{"selection", r.selection},
	}
	for _, s := range steps {
		if err := s.draw(opts); err != nil {
			return nil, fmt.Errorf("drawing %s: %w", s.name, err)
		}
	}
	return dc.Image(), nil
}

func (r *renderer) polygon(poly []geom.Vec2) {
	for i, p := range poly {
		s := r.view.WorldToScreen(p)
		if i == 0 {
			r.dc.MoveTo(s[0], s[1])
		} else {
			r.dc.LineTo(s[0], s[1])
		}
	}
	r.dc.ClosePath()
}

func (r *renderer) line(a, b geom.Vec2) {
	sa := r.view.WorldToScreen(a)
	sb := r.view.WorldToScreen(b)
	r.dc.MoveTo(sa[0], sa[1])
	r.dc.LineTo(sb[0], sb[1])
}

func (r *renderer) circle(p geom.Vec2, radius float64) {
	s := r.view.WorldToScreen(p)
	r.dc.DrawCircle(s[0], s[1], radius)
}

func (r *renderer) sectors(Options) error {
	r.dc.SetRGB(0.85, 0.85, 0.85)
	for _, s := range r.m.Sectors {
		loop, err := boundary.Extract(r.m, s.ID)
		if err != nil {
			level.Logger().Debug("preview skips sector", "sector", s.ID, "err", err)
			continue
		}
		r.polygon(loop.Polygon)
		if err := r.dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) strips(opts Options) error {
	if opts.Mode != pick.Textured {
		return nil
	}
	r.dc.SetRGB(0.55, 0.45, 0.35)
	for _, p := range strip.Compute(r.m, opts.Thickness, opts.Strip) {
		r.polygon(p.Points)
		if err := r.dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) walls(Options) error {
	r.dc.SetLineWidth(2)
	for i, w := range r.m.Walls {
		a, b, ok := r.m.WallSegment(i)
		if !ok {
			continue
		}
		if w.BackSector == level.NoSector {
			r.dc.SetRGB(0.1, 0.1, 0.1)
		} else {
			r.dc.SetRGB(0.8, 0.2, 0.2)
		}
		r.line(a, b)
		if err := r.dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) doors(Options) error {
	r.dc.SetRGB(0.6, 0.3, 0.8)
	for _, d := range r.m.Doors {
		a, b, ok := r.m.WallSegment(d.Wall)
		if !ok {
			continue
		}
		r.circle(a.Add(b).Mul(0.5), doorRadius)
		if err := r.dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) markers(Options) error {
	groups := []struct {
		r, g, b float64
		points  []level.Vertex
	}{
		{0.95, 0.8, 0.1, positions(r.m.Lights, func(l level.Light) level.Vertex { return l.Position })},
		{0.1, 0.7, 0.8, positions(r.m.Particles, func(p level.Particle) level.Vertex { return p.Position })},
		{0.2, 0.7, 0.2, positions(r.m.Entities, func(e level.Entity) level.Vertex { return e.Position })},
	}
	for _, g := range groups {
		r.dc.SetRGB(g.r, g.g, g.b)
		for _, p := range g.points {
			r.circle(p.Vec(), markerRadius)
			if err := r.dc.Fill(); err != nil {
				return err
			}
		}
	}
	return nil
}

func positions[T any](items []T, pos func(T) level.Vertex) []level.Vertex {
	out := make([]level.Vertex, len(items))
	for i, item := range items {
		out[i] = pos(item)
	}
	return out
}

func (r *renderer) room(opts Options) error {
	if len(opts.Room) < 3 {
		return nil
	}
	if opts.RoomValid {
		r.dc.SetRGBA(0.2, 0.8, 0.2, 0.4)
	} else {
		r.dc.SetRGBA(0.9, 0.1, 0.1, 0.4)
	}
	r.polygon(opts.Room)
	return r.dc.Fill()
}

func (r *renderer) selection(opts Options) error {
	if opts.Selected == nil || !opts.Selected.Exists(r.m) {
		return nil
	}
	r.dc.SetRGB(0.1, 0.4, 1)
	r.dc.SetLineWidth(4)

	sel := *opts.Selected
	switch sel.Kind {
	case level.KindSector:
		loop, err := boundary.Extract(r.m, sel.Index)
		if err != nil {
			return nil
		}
		r.polygon(loop.Polygon)
	case level.KindWall:
		a, b, ok := r.m.WallSegment(sel.Index)
		if !ok {
			return nil
		}
		r.line(a, b)
	case level.KindDoor:
		a, b, ok := r.m.WallSegment(r.m.Doors[r.m.DoorIndex(sel.Index)].Wall)
		if !ok {
			return nil
		}
		r.circle(a.Add(b).Mul(0.5), doorRadius+3)
	case level.KindLight:
		r.circle(r.m.Lights[sel.Index].Position.Vec(), markerRadius+3)
	case level.KindParticle:
		r.circle(r.m.Particles[sel.Index].Position.Vec(), markerRadius+3)
	case level.KindEntity:
		r.circle(r.m.Entities[sel.Index].Position.Vec(), markerRadius+3)
	default:
		panic(fmt.Sprintf("preview: unhandled selection kind %d", int(sel.Kind)))
	}
	return r.dc.Stroke()
}

// Write saves img to path, as QOI when the extension is .qoi and as PNG when
// it is .png.
func Write(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".qoi" {
		return fmt.Errorf("unsupported preview format %q (use .png or .qoi)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if ext == ".qoi" {
		err = qoi.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
