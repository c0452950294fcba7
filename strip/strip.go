// Package strip generates the thick "textured strip" polygon drawn along each
// wall. Strips of consecutive walls in a sector loop share their join points,
// so neighbouring strips meet without seams.
package strip

import (
	"math"
	"slices"

	"github.com/bloodmagesoftware/sectorgeo/boundary"
	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/paulmach/orb"
)

type Options struct {
	// MiterLimit caps the distance of a join point from its vertex, in
	// multiples of the thickness.
	MiterLimit float64
	// ParallelEpsilon is the cross product of unit edge directions below which
	// two edges are treated as parallel.
	ParallelEpsilon float64
	// MinSegmentLength is the length below which a wall gets a fallback quad.
	MinSegmentLength float64
}

func DefaultOptions() Options {
	return Options{
		MiterLimit:       4,
		ParallelEpsilon:  1e-6,
		MinSegmentLength: 1e-4,
	}
}

// Polygon is the strip quad of one wall.
type Polygon struct {
	Wall   int
	Points []geom.Vec2
	// FromLoop is true when the strip was derived from a sector boundary loop
	// and false for a fallback quad.
	FromLoop bool
}

// ByWall indexes strips by wall index.
func ByWall(polys []Polygon) map[int]Polygon {
	out := make(map[int]Polygon, len(polys))
	for _, p := range polys {
		if _, ok := out[p.Wall]; !ok {
			out[p.Wall] = p
		}
	}
	return out
}

// Compute returns at most one strip per wall, sorted by wall index. Walls that
// belong to an extractable sector loop get inward-offset quads with miter or
// bevel joins; the rest get capped fallback quads. A non-positive or
// non-finite thickness yields no strips.
func Compute(m *level.Map, thickness float64, opts Options) []Polygon {
	if !(thickness > 0) || !geom.IsFinite(thickness) {
		return nil
	}

	byWall := make(map[int]Polygon)
	for _, s := range m.Sectors {
		loop, err := boundary.Extract(m, s.ID)
		if err != nil {
			level.Logger().Debug("sector has no strip loop", "sector", s.ID, "err", err)
			continue
		}
		for _, p := range loopStrips(loop, thickness, opts) {
			if _, ok := byWall[p.Wall]; !ok {
				byWall[p.Wall] = p
			}
		}
	}

	for i := range m.Walls {
		if _, ok := byWall[i]; ok {
			continue
		}
		if p, ok := fallbackStrip(m, i, thickness, opts); ok {
			byWall[i] = p
		}
	}

	out := make([]Polygon, 0, len(byWall))
	for _, p := range byWall {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Polygon) int { return a.Wall - b.Wall })
	return out
}

type loopEdge struct {
	dir    geom.Vec2 // unit direction
	normal geom.Vec2 // unit inward normal
	ok     bool
}

func loopStrips(loop *boundary.Loop, thickness float64, opts Options) []Polygon {
	poly := loop.Polygon
	n := len(poly)

	// The interior lies left of a counter-clockwise loop and right of a
	// clockwise one.
	var side float64
	switch geom.Orientation(poly) {
	case orb.CCW:
		side = 1
	case orb.CW:
		side = -1
	default:
		return nil
	}

	edges := make([]loopEdge, n)
	for i := 0; i < n; i++ {
		d := poly[(i+1)%n].Sub(poly[i])
		dir, ok := geom.Normalize(d)
		if !ok || d.Len() < opts.MinSegmentLength {
			continue
		}
		edges[i] = loopEdge{dir: dir, normal: geom.Perp(dir).Mul(side), ok: true}
	}

	// joins[i] sits at vertex i, between edge i-1 and edge i.
	joins := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		joins[i] = joinPoint(poly[i], edges[(i+n-1)%n], edges[i], thickness, opts)
	}

	out := make([]Polygon, 0, n)
	for i := 0; i < n; i++ {
		if !edges[i].ok {
			continue
		}
		j := (i + 1) % n
		out = append(out, Polygon{
			Wall:     loop.WallIndices[i],
			Points:   []geom.Vec2{poly[i], poly[j], joins[j], joins[i]},
			FromLoop: true,
		})
	}
	return out
}

// joinPoint returns the inward offset point at vertex v shared by edges prev
// and cur. It is the intersection of the two offset lines (miter) unless the
// edges are near-parallel or the miter is longer than MiterLimit*thickness,
// in which case it is a bevel point along the normal bisector.
func joinPoint(v geom.Vec2, prev, cur loopEdge, thickness float64, opts Options) geom.Vec2 {
	limit := opts.MiterLimit * thickness
	switch {
	case !prev.ok && !cur.ok:
		return v
	case !prev.ok:
		return v.Add(cur.normal.Mul(math.Min(thickness, limit)))
	case !cur.ok:
		return v.Add(prev.normal.Mul(math.Min(thickness, limit)))
	}

	if math.Abs(geom.Cross(prev.dir, cur.dir)) >= opts.ParallelEpsilon {
		miter, ok := geom.LineIntersection(
			v.Add(prev.normal.Mul(thickness)), prev.dir,
			v.Add(cur.normal.Mul(thickness)), cur.dir,
			opts.ParallelEpsilon,
		)
		if ok && geom.Distance(miter, v) <= limit {
			return miter
		}
	}
	return bevelPoint(v, prev.normal, cur.normal, thickness, limit)
}

func bevelPoint(v, nPrev, nCur geom.Vec2, thickness, limit float64) geom.Vec2 {
	dir, ok := geom.Normalize(nPrev.Add(nCur))
	if !ok {
		// The wall doubles back on itself.
		dir = nCur
	}
	dist := limit
	if cosHalf := dir.Dot(nCur); cosHalf > geom.NormalizeEpsilon {
		dist = math.Min(thickness/cosHalf, limit)
	}
	return v.Add(dir.Mul(dist))
}

// fallbackStrip builds a quad directly from the wall's endpoints. Solid walls
// with a front sector get a one-sided strip towards the front (left of
// V0->V1); other walls get a symmetric strip. Degenerate walls are capped
// into a square so they stay visible and pickable.
func fallbackStrip(m *level.Map, wall int, thickness float64, opts Options) (Polygon, bool) {
	a, b, ok := m.WallSegment(wall)
	if !ok {
		level.Logger().Debug("skipping wall with missing vertex", "wall", wall)
		return Polygon{}, false
	}

	d := b.Sub(a)
	dir, ok := geom.Normalize(d)
	degenerate := !ok || d.Len() < opts.MinSegmentLength
	if !ok {
		dir = geom.V(1, 0)
	}
	normal := geom.Perp(dir)

	w := m.Walls[wall]
	if !degenerate && w.FrontSector != level.NoSector && w.BackSector == level.NoSector {
		off := normal.Mul(thickness)
		return Polygon{
			Wall:   wall,
			Points: []geom.Vec2{a, b, b.Add(off), a.Add(off)},
		}, true
	}

	half := thickness / 2
	if degenerate {
		a = a.Sub(dir.Mul(half))
		b = b.Add(dir.Mul(half))
	}
	off := normal.Mul(half)
	return Polygon{
		Wall:   wall,
		Points: []geom.Vec2{a.Sub(off), b.Sub(off), b.Add(off), a.Add(off)},
	}, true
}
