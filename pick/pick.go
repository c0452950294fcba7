package pick

import (
	"cmp"
	"slices"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/strip"
)

// RenderMode selects how walls are hit-tested.
type RenderMode int

const (
	// Wireframe draws walls as lines; walls are hit by distance only.
	Wireframe RenderMode = iota
	// Textured draws walls as thick strips; a point inside a wall's strip
	// polygon hits that wall directly.
	Textured
)

func (r RenderMode) String() string {
	if r == Textured {
		return "textured"
	}
	return "wireframe"
}

// DefaultHitRadiusPx is the pick radius for markers, doors and walls.
const DefaultHitRadiusPx = 10.0

// Priority bands, lowest wins.
const (
	bandMarker = iota
	bandDoor
	bandWall
	bandSector
)

// Query describes one pick request.
type Query struct {
	// Point is the pointer position in world coordinates.
	Point geom.Vec2
	// ViewScale is the world-to-screen ratio; distances are compared in screen
	// pixels.
	ViewScale float64
	Mode      RenderMode
	// Strips are the wall strip polygons computed for the current frame. Only
	// used in Textured mode; may be nil.
	Strips []strip.Polygon
	// HitRadiusPx overrides DefaultHitRadiusPx when positive.
	HitRadiusPx float64
	// Epsilon is the world-space tolerance for containment tests. Zero means
	// geom.DefaultEpsilon.
	Epsilon float64
}

type candidate struct {
	band int
	dist float64
	key  uint64
	sel  level.Selection
}

func compareCandidates(a, b candidate) int {
	return cmp.Or(
		cmp.Compare(a.band, b.band),
		cmp.Compare(a.dist, b.dist),
		cmp.Compare(a.key, b.key),
	)
}

func newCandidate(band int, dist float64, kind level.Kind, index int) candidate {
	return candidate{
		band: band,
		dist: dist,
		key:  uint64(kind)<<32 | uint64(uint32(index)),
		sel:  level.Selection{Kind: kind, Index: index},
	}
}

// Pick resolves a pointer position into a single map element. Candidates are
// ranked by band (markers, doors, walls, sectors), then by screen distance,
// then by a stable key derived from their identity, so identical input always
// yields the same selection.
func Pick(m *level.Map, q Query) (level.Selection, bool) {
	if !(q.ViewScale > 0) || !geom.IsFinite(q.ViewScale) {
		return level.Selection{}, false
	}
	radius := q.HitRadiusPx
	if radius <= 0 {
		radius = DefaultHitRadiusPx
	}
	eps := q.Epsilon
	if eps <= 0 {
		eps = geom.DefaultEpsilon
	}

	var candidates []candidate
	candidates = appendMarkers(candidates, m, q, radius)
	candidates = appendDoors(candidates, m, q, radius)
	candidates = appendWalls(candidates, m, q, radius, eps)

	if len(candidates) == 0 {
		if id, ok := EnclosingSector(q.Point, m, eps); ok {
			candidates = append(candidates, newCandidate(bandSector, 0, level.KindSector, id))
		}
	}
	if len(candidates) == 0 {
		return level.Selection{}, false
	}
	return slices.MinFunc(candidates, compareCandidates).sel, true
}

func appendMarkers(out []candidate, m *level.Map, q Query, radius float64) []candidate {
	hit := func(kind level.Kind, i int, pos level.Vertex) {
		d := geom.Distance(q.Point, pos.Vec()) * q.ViewScale
		if d <= radius {
			out = append(out, newCandidate(bandMarker, d, kind, i))
		}
	}
	for i, e := range m.Entities {
		hit(level.KindEntity, i, e.Position)
	}
	for i, p := range m.Particles {
		hit(level.KindParticle, i, p.Position)
	}
	for i, l := range m.Lights {
		hit(level.KindLight, i, l.Position)
	}
	return out
}

func appendDoors(out []candidate, m *level.Map, q Query, radius float64) []candidate {
	for _, door := range m.Doors {
		a, b, ok := m.WallSegment(door.Wall)
		if !ok {
			level.Logger().Debug("skipping door with missing wall", "door", door.ID, "wall", door.Wall)
			continue
		}
		mid := a.Add(b).Mul(0.5)
		d := geom.Distance(q.Point, mid) * q.ViewScale
		if d <= radius {
			out = append(out, newCandidate(bandDoor, d, level.KindDoor, door.ID))
		}
	}
	return out
}

func appendWalls(out []candidate, m *level.Map, q Query, radius, eps float64) []candidate {
	var strips map[int]strip.Polygon
	if q.Mode == Textured {
		strips = strip.ByWall(q.Strips)
	}

	for i := range m.Walls {
		a, b, ok := m.WallSegment(i)
		if !ok {
			continue
		}
		if s, ok := strips[i]; ok && geom.PointInPolygon(q.Point, s.Points, eps, false) {
			out = append(out, newCandidate(bandWall, 0, level.KindWall, i))
			continue
		}
		d := geom.PointSegmentDistance(q.Point, a, b) * q.ViewScale
		if d <= radius {
			out = append(out, newCandidate(bandWall, d, level.KindWall, i))
		}
	}
	return out
}
