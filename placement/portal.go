package placement

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
)

// ParallelDot is the minimum |cos| between a room edge and a wall for the edge
// to count as parallel to it.
const ParallelDot = 0.995

// PlanReason classifies why no portal plan exists.
type PlanReason string

const (
	InvalidWallIndex PlanReason = "invalid-wall-index"
	PlanNonCollinear PlanReason = "non-collinear"
	NoOverlap        PlanReason = "no-overlap"
)

type PlanError struct {
	Wall   int
	Reason PlanReason
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("portal plan for wall %d: %s", e.Wall, e.Reason)
}

// PortalPlan describes how a room attaches to an existing wall.
type PortalPlan struct {
	WallIndex int
	// EdgeIndex is the room edge (from vertex EdgeIndex to EdgeIndex+1) that
	// lands on the wall.
	EdgeIndex int
	// Offset is the translation applied to the room, perpendicular to the wall.
	Offset geom.Vec2
	// Snapped is the translated room polygon.
	Snapped []geom.Vec2
	// PortalStart and PortalEnd bound the opening shared by wall and edge.
	PortalStart geom.Vec2
	PortalEnd   geom.Vec2
}

// edgeMatch is a room edge parallel to a wall and overlapping it along the
// wall's axis.
type edgeMatch struct {
	edge    int
	signed  float64 // signed distance of the edge midpoint from the wall line
	dist    float64
	distKey int64 // dist quantised to eps; equal keys are tied distances
	overlap float64
	lo, hi  float64 // overlap interval along the wall, from its first vertex
}

// parallelEdges returns the room edges parallel to a-b with positive overlap,
// nearest first, then largest overlap, then lowest edge index.
func parallelEdges(room []geom.Vec2, a, b geom.Vec2, eps float64) []edgeMatch {
	if eps <= 0 {
		eps = geom.DefaultEpsilon
	}
	u, ok := geom.Normalize(b.Sub(a))
	if !ok {
		return nil
	}
	n := geom.Perp(u)
	length := geom.Distance(a, b)

	var out []edgeMatch
	for i := range room {
		p := room[i]
		q := room[(i+1)%len(room)]
		dir, ok := geom.Normalize(q.Sub(p))
		if !ok || math.Abs(dir.Dot(u)) < ParallelDot {
			continue
		}
		tp := p.Sub(a).Dot(u)
		tq := q.Sub(a).Dot(u)
		lo := math.Max(0, math.Min(tp, tq))
		hi := math.Min(length, math.Max(tp, tq))
		if hi-lo <= eps {
			continue
		}
		signed := p.Add(q).Mul(0.5).Sub(a).Dot(n)
		out = append(out, edgeMatch{
			edge:    i,
			signed:  signed,
			dist:    math.Abs(signed),
			distKey: int64(math.Round(math.Abs(signed) / eps)),
			overlap: hi - lo,
			lo:      lo,
			hi:      hi,
		})
	}

	slices.SortFunc(out, func(x, y edgeMatch) int {
		if c := cmp.Compare(x.distKey, y.distKey); c != 0 {
			return c
		}
		if c := cmp.Compare(y.overlap, x.overlap); c != 0 {
			return c
		}
		return cmp.Compare(x.edge, y.edge)
	})
	return out
}

// AdjacentPortalPlan snaps the room onto the given wall. It finds the room
// edge most parallel to the wall with positive overlap, preferring the nearest
// and then the longest overlap, translates the room perpendicular to the wall
// so that edge lies on the wall's line, and reports the overlap as the portal
// opening.
func AdjacentPortalPlan(m *level.Map, room []geom.Vec2, wall int, eps float64) (*PortalPlan, error) {
	a, b, ok := m.WallSegment(wall)
	if !ok || geom.Distance(a, b) <= eps {
		return nil, &PlanError{Wall: wall, Reason: InvalidWallIndex}
	}
	if len(room) == 0 {
		return nil, &PlanError{Wall: wall, Reason: NoOverlap}
	}

	matches := parallelEdges(room, a, b, eps)
	if len(matches) == 0 {
		return nil, &PlanError{Wall: wall, Reason: PlanNonCollinear}
	}
	best := matches[0]

	u, _ := geom.Normalize(b.Sub(a))
	offset := geom.Perp(u).Mul(-best.signed)
	return &PortalPlan{
		WallIndex:   wall,
		EdgeIndex:   best.edge,
		Offset:      offset,
		Snapped:     geom.Translate(room, offset),
		PortalStart: a.Add(u.Mul(best.lo)),
		PortalEnd:   a.Add(u.Mul(best.hi)),
	}, nil
}
