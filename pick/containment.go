// Package pick answers "what is under this point" for a map snapshot:
// point-in-sector tests, nested-sector resolution and priority-based
// hit-testing of markers, doors, walls and sectors.
package pick

import (
	"math"

	"github.com/bloodmagesoftware/sectorgeo/boundary"
	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
)

// AreaTieEpsilon is the tolerance on doubled sector area below which two
// enclosing sectors are considered the same size.
const AreaTieEpsilon = 1e-4

// PointInSector reports whether p lies inside the sector, casting a ray along
// +X over the sector's oriented boundary edges. Points on the boundary count
// as inside. It does not need a clean boundary loop.
func PointInSector(p geom.Vec2, m *level.Map, sectorID int, eps float64) bool {
	segs := boundary.Segments(m, sectorID)
	if len(segs) == 0 {
		return false
	}

	inside := false
	for _, s := range segs {
		a, b := s.A, s.B
		if geom.PointSegmentDistance(p, a, b) <= eps {
			return true
		}
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := a[0] + (p[1]-a[1])*(b[0]-a[0])/(b[1]-a[1])
			if p[0] == x {
				return true
			}
			if p[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SectorArea returns the absolute doubled area enclosed by the sector's
// oriented boundary edges. A sector without usable edges has infinite area.
func SectorArea(m *level.Map, sectorID int) float64 {
	segs := boundary.Segments(m, sectorID)
	if len(segs) == 0 {
		return math.Inf(1)
	}
	var area float64
	for _, s := range segs {
		area += geom.Cross(s.A, s.B)
	}
	return math.Abs(area)
}

// EnclosingSector returns the sector containing p. Sectors may nest or
// overlap; the one with the smallest area wins, and areas within
// AreaTieEpsilon are broken by the lowest sector id. The result does not
// depend on the order of the sector array.
func EnclosingSector(p geom.Vec2, m *level.Map, eps float64) (int, bool) {
	type containing struct {
		id   int
		area float64
	}
	var hits []containing
	minArea := math.Inf(1)
	for _, s := range m.Sectors {
		if !PointInSector(p, m, s.ID, eps) {
			continue
		}
		area := SectorArea(m, s.ID)
		hits = append(hits, containing{s.ID, area})
		if area < minArea {
			minArea = area
		}
	}

	best, found := 0, false
	for _, h := range hits {
		if !geom.NearlyEqual(h.area, minArea, AreaTieEpsilon) {
			continue
		}
		if !found || h.id < best {
			best, found = h.id, true
		}
	}
	return best, found
}
