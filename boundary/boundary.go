// Package boundary turns a sector's unordered wall set into one ordered,
// closed polygon loop with the wall index of every edge.
package boundary

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
)

// Reason classifies why a sector has no usable boundary loop.
type Reason string

const (
	NoEdges       Reason = "no-edges"
	TooFewEdges   Reason = "too-few-edges"
	OpenLoop      Reason = "open-loop"
	Ambiguous     Reason = "ambiguous"
	NonSimple     Reason = "non-simple"
	MissingVertex Reason = "missing-vertex"
)

// Error is returned when a sector's boundary cannot be extracted.
type Error struct {
	SectorID int
	Reason   Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("sector %d boundary: %s", e.SectorID, e.Reason)
}

// ReasonOf returns the boundary reason carried by err, if any.
func ReasonOf(err error) (Reason, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Reason, true
	}
	return "", false
}

// Loop is a closed polygon derived from a sector's walls. The closing vertex is
// not repeated: edge i runs from Polygon[i] to Polygon[(i+1)%n] and belongs to
// wall WallIndices[i].
type Loop struct {
	SectorID      int
	Polygon       []geom.Vec2
	VertexIndices []int
	WallIndices   []int
}

// Len returns the number of edges in the loop.
func (l *Loop) Len() int {
	return len(l.Polygon)
}

// Edge returns the endpoints and wall index of edge i.
func (l *Loop) Edge(i int) (geom.Vec2, geom.Vec2, int) {
	n := len(l.Polygon)
	return l.Polygon[i%n], l.Polygon[(i+1)%n], l.WallIndices[i%n]
}

// Edge is a wall oriented away from From towards To. Vertex fields are indices
// into the map's vertex array.
type Edge struct {
	Wall int
	From int
	To   int
}

func (e Edge) flipped() Edge {
	return Edge{Wall: e.Wall, From: e.To, To: e.From}
}

// Edges returns the boundary edges of a sector oriented so the sector lies on
// the same side of every edge. Walls naming the sector as front sector are the
// primary source; when there are none, walls naming it as back sector are used
// reversed. Interior walls with the sector on both sides are skipped.
func Edges(m *level.Map, sectorID int) []Edge {
	var front, back []Edge
	for i, w := range m.Walls {
		if w.FrontSector == sectorID && w.BackSector == sectorID {
			continue
		}
		if w.FrontSector == sectorID {
			front = append(front, Edge{Wall: i, From: w.V0, To: w.V1})
		} else if w.BackSector == sectorID {
			back = append(back, Edge{Wall: i, From: w.V1, To: w.V0})
		}
	}
	if len(front) > 0 {
		return front
	}
	return back
}

// Segment is a boundary edge resolved to coordinates.
type Segment struct {
	Wall int
	A, B geom.Vec2
}

// Segments resolves the sector's boundary edges to coordinates. Edges that
// reference missing vertices are skipped.
func Segments(m *level.Map, sectorID int) []Segment {
	edges := Edges(m, sectorID)
	segs := make([]Segment, 0, len(edges))
	for _, e := range edges {
		a, okA := m.Vertex(e.From)
		b, okB := m.Vertex(e.To)
		if !okA || !okB {
			level.Logger().Debug("skipping wall with missing vertex", "sector", sectorID, "wall", e.Wall)
			continue
		}
		segs = append(segs, Segment{Wall: e.Wall, A: a, B: b})
	}
	return segs
}

// Strategy walks a set of oriented edges into a closed path. On success the
// returned edges are oriented in walk order, so path[i].To == path[i+1].From
// and the last edge ends where the first begins. A non-empty Reason means the
// walk failed.
type Strategy interface {
	Name() string
	Walk(m *level.Map, edges []Edge) ([]Edge, Reason)
}

// Extractor runs the primary strategy and, when it fails with one of the
// RetryOn reasons, the fallback strategy. Only the final reason is reported.
type Extractor struct {
	Primary  Strategy
	Fallback Strategy
	RetryOn  []Reason
}

// NewExtractor returns the standard extractor: a directed walk that falls back
// to an undirected walk for inconsistently wound maps.
func NewExtractor(eps float64) Extractor {
	return Extractor{
		Primary:  DirectedWalk{AngleEpsilon: eps},
		Fallback: UndirectedWalk{},
		RetryOn:  []Reason{OpenLoop, Ambiguous, NonSimple},
	}
}

var defaultExtractor = NewExtractor(geom.DefaultEpsilon)

// Extract returns the boundary loop of a sector using the standard extractor.
func Extract(m *level.Map, sectorID int) (*Loop, error) {
	return defaultExtractor.Extract(m, sectorID)
}

// Extract returns the boundary loop of a sector.
func (x Extractor) Extract(m *level.Map, sectorID int) (*Loop, error) {
	edges := Edges(m, sectorID)
	if len(edges) == 0 {
		return nil, &Error{SectorID: sectorID, Reason: NoEdges}
	}
	if len(edges) < 3 {
		return nil, &Error{SectorID: sectorID, Reason: TooFewEdges}
	}
	for _, e := range edges {
		_, okA := m.Vertex(e.From)
		_, okB := m.Vertex(e.To)
		if !okA || !okB {
			return nil, &Error{SectorID: sectorID, Reason: MissingVertex}
		}
	}

	path, reason := x.Primary.Walk(m, edges)
	if reason != "" && x.Fallback != nil && slices.Contains(x.RetryOn, reason) {
		level.Logger().Debug("boundary walk failed, retrying",
			"sector", sectorID,
			"strategy", x.Primary.Name(),
			"reason", string(reason),
			"fallback", x.Fallback.Name(),
		)
		path, reason = x.Fallback.Walk(m, edges)
	}
	if reason != "" {
		return nil, &Error{SectorID: sectorID, Reason: reason}
	}

	loop := &Loop{
		SectorID:      sectorID,
		Polygon:       make([]geom.Vec2, 0, len(path)),
		VertexIndices: make([]int, 0, len(path)),
		WallIndices:   make([]int, 0, len(path)),
	}
	for _, e := range path {
		p, _ := m.Vertex(e.From)
		loop.Polygon = append(loop.Polygon, p)
		loop.VertexIndices = append(loop.VertexIndices, e.From)
		loop.WallIndices = append(loop.WallIndices, e.Wall)
	}
	if len(loop.Polygon) != len(loop.WallIndices) {
		panic(fmt.Sprintf("boundary: sector %d loop has %d vertices but %d walls",
			sectorID, len(loop.Polygon), len(loop.WallIndices)))
	}
	return loop, nil
}
