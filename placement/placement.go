// Package placement classifies a candidate room polygon against a map: as the
// first room, nested inside a sector, snapped onto a solid wall, or rejected.
package placement

import (
	"errors"
	"fmt"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/pick"
)

// State is the terminal classification of a candidate room.
type State string

const (
	InvalidSize State = "invalid-size"
	Seed        State = "seed"
	Nested      State = "nested"
	Adjacent    State = "adjacent"
	Invalid     State = "invalid"
)

// Reason explains an Invalid result.
type Reason string

const (
	NoSnapTarget    Reason = "no-snap-target"
	NonCollinear    Reason = "non-collinear"
	Ambiguous       Reason = "ambiguous"
	IntersectsWalls Reason = "intersects-walls"
)

const (
	DefaultSnapThresholdPx = 12.0
	DefaultMinSizeWorld    = 1.0
)

type Params struct {
	// ViewScale converts world units to screen pixels.
	ViewScale       float64
	SnapThresholdPx float64
	MinSizeWorld    float64
	Epsilon         float64
}

func DefaultParams(viewScale float64) Params {
	return Params{
		ViewScale:       viewScale,
		SnapThresholdPx: DefaultSnapThresholdPx,
		MinSizeWorld:    DefaultMinSizeWorld,
		Epsilon:         geom.DefaultEpsilon,
	}
}

type Result struct {
	State  State
	Reason Reason
	// EnclosingSectorID is set for Nested results.
	EnclosingSectorID int
	// TargetWallIndex is the snap wall for Adjacent results and for rejections
	// tied to a specific wall. It is -1 otherwise.
	TargetWallIndex int
	Plan            *PortalPlan
}

// Valid reports whether the room may be committed.
func (r Result) Valid() bool {
	switch r.State {
	case Seed, Nested, Adjacent:
		return true
	default:
		return false
	}
}

func (r Result) String() string {
	if r.Valid() {
		return fmt.Sprintf("room-valid/%s", r.State)
	}
	if r.State == Invalid {
		return fmt.Sprintf("room-invalid/%s", r.Reason)
	}
	return fmt.Sprintf("room-invalid/%s", r.State)
}

func invalid(reason Reason, wall int) Result {
	return Result{State: Invalid, Reason: reason, EnclosingSectorID: level.NoSector, TargetWallIndex: wall}
}

// Validate classifies room against m.
func Validate(m *level.Map, room []geom.Vec2, p Params) Result {
	eps := p.Epsilon
	if eps <= 0 {
		eps = geom.DefaultEpsilon
	}

	if len(room) < 3 {
		return Result{State: InvalidSize, EnclosingSectorID: level.NoSector, TargetWallIndex: -1}
	}
	b := geom.Bound(room)
	if b.Max[0]-b.Min[0] < p.MinSizeWorld || b.Max[1]-b.Min[1] < p.MinSizeWorld {
		return Result{State: InvalidSize, EnclosingSectorID: level.NoSector, TargetWallIndex: -1}
	}

	if m.IsEmpty() {
		return Result{State: Seed, EnclosingSectorID: level.NoSector, TargetWallIndex: -1}
	}

	if !(p.ViewScale > 0) || !geom.IsFinite(p.ViewScale) {
		return invalid(NoSnapTarget, -1)
	}

	if id, ok := nestedSector(m, room, eps); ok {
		return Result{State: Nested, EnclosingSectorID: id, TargetWallIndex: -1}
	}

	return adjacent(m, room, p, eps)
}

// nestedSector reports the sector enclosing every room vertex, provided no
// wall touches or crosses the room and no wall lies inside it.
func nestedSector(m *level.Map, room []geom.Vec2, eps float64) (int, bool) {
	id, ok := pick.EnclosingSector(room[0], m, eps)
	if !ok {
		return 0, false
	}
	for _, v := range room[1:] {
		other, ok := pick.EnclosingSector(v, m, eps)
		if !ok || other != id {
			return 0, false
		}
	}

	for i := range m.Walls {
		a, b, ok := m.WallSegment(i)
		if !ok {
			continue
		}
		if crossesRoom(room, a, b, eps, true) {
			return 0, false
		}
	}
	return id, true
}

// crossesRoom reports whether the segment a-b collides with the room outline
// or lies inside it. With touching set, endpoint and collinear contact count
// as collisions.
func crossesRoom(room []geom.Vec2, a, b geom.Vec2, eps float64, touching bool) bool {
	for i := range room {
		p := room[i]
		q := room[(i+1)%len(room)]
		switch geom.IntersectSegments(p, q, a, b, eps) {
		case geom.Crossing:
			return true
		case geom.Touching, geom.Collinear:
			if touching {
				return true
			}
		}
	}
	return geom.PointInPolygon(a, room, eps, false) || geom.PointInPolygon(b, room, eps, false)
}

// roomDistance returns the smallest distance between the room outline and the
// segment a-b.
func roomDistance(room []geom.Vec2, a, b geom.Vec2, eps float64) float64 {
	best := geom.SegmentDistance(room[0], room[1%len(room)], a, b, eps)
	for i := 1; i < len(room); i++ {
		d := geom.SegmentDistance(room[i], room[(i+1)%len(room)], a, b, eps)
		if d < best {
			best = d
		}
	}
	return best
}

// straddles reports whether the room has vertices strictly on both sides of
// the line through a and b.
func straddles(room []geom.Vec2, a, b geom.Vec2, eps float64) bool {
	line, ok := geom.LineThrough(a, b)
	if !ok {
		return false
	}
	var front, back bool
	for _, v := range room {
		switch line.Classify(v, eps) {
		case 1:
			front = true
		case -1:
			back = true
		}
	}
	return front && back
}

type snapTarget struct {
	wall   int
	distPx float64
}

func adjacent(m *level.Map, room []geom.Vec2, p Params, eps float64) Result {
	logger := level.Logger()

	var best *snapTarget
	near := false
	for i, w := range m.Walls {
		if w.BackSector != level.NoSector {
			continue
		}
		a, b, ok := m.WallSegment(i)
		if !ok || geom.Distance(a, b) <= eps {
			continue
		}
		if roomDistance(room, a, b, eps)*p.ViewScale > p.SnapThresholdPx {
			continue
		}
		near = true
		if !geom.AxisAligned(a, b, eps) {
			continue
		}
		matches := parallelEdges(room, a, b, eps)
		if len(matches) == 0 {
			continue
		}
		if straddles(room, a, b, eps) && tiedNearest(matches) > 1 {
			logger.Debug("ambiguous straddle", "wall", i)
			return invalid(IntersectsWalls, i)
		}
		d := matches[0].dist * p.ViewScale
		if d > p.SnapThresholdPx {
			continue
		}
		if best == nil || d < best.distPx-eps {
			best = &snapTarget{wall: i, distPx: d}
		}
	}

	if best == nil {
		if near {
			return invalid(NonCollinear, -1)
		}
		return invalid(NoSnapTarget, -1)
	}

	plan, err := AdjacentPortalPlan(m, room, best.wall, eps)
	if err != nil {
		logger.Debug("portal plan failed", "wall", best.wall, "err", err)
		var pe *PlanError
		if errors.As(err, &pe) && pe.Reason == PlanNonCollinear {
			return invalid(NonCollinear, best.wall)
		}
		return invalid(Ambiguous, best.wall)
	}

	for i := range m.Walls {
		if i == best.wall {
			continue
		}
		a, b, ok := m.WallSegment(i)
		if !ok {
			continue
		}
		if crossesRoom(plan.Snapped, a, b, eps, false) {
			logger.Debug("snapped room crosses wall", "wall", i, "target", best.wall)
			return invalid(IntersectsWalls, best.wall)
		}
	}

	if overlapsFront(m, plan, eps) {
		return invalid(IntersectsWalls, best.wall)
	}

	return Result{
		State:             Adjacent,
		EnclosingSectorID: level.NoSector,
		TargetWallIndex:   best.wall,
		Plan:              plan,
	}
}

// tiedNearest counts the parallel edges sharing the smallest distance.
func tiedNearest(matches []edgeMatch) int {
	n := 0
	for _, e := range matches {
		if e.distKey != matches[0].distKey {
			break
		}
		n++
	}
	return n
}

// overlapsFront reports whether the snapped room lies on the same side of the
// target wall as the wall's front sector.
func overlapsFront(m *level.Map, plan *PortalPlan, eps float64) bool {
	w := m.Walls[plan.WallIndex]
	if w.FrontSector == level.NoSector {
		return false
	}
	a, b, _ := m.WallSegment(plan.WallIndex)
	line, ok := geom.LineThrough(a, b)
	if !ok {
		return false
	}

	mid := a.Add(b).Mul(0.5)
	probe := line.Normal.Mul(geom.Distance(a, b) * 1e-3)
	left := pick.PointInSector(mid.Add(probe), m, w.FrontSector, 0)
	right := pick.PointInSector(mid.Sub(probe), m, w.FrontSector, 0)
	var sectorSide int
	switch {
	case left && !right:
		sectorSide = 1
	case right && !left:
		sectorSide = -1
	default:
		return false
	}
	return line.Classify(geom.Centroid(plan.Snapped), eps) == sectorSide
}
