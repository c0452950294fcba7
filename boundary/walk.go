package boundary

import (
	"cmp"
	"math"
	"slices"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/zyedidia/generic/mapset"
)

// arena holds the edges of one walk in deterministic order. Consumed edges are
// tracked by index in remaining so the arena itself never changes.
type arena struct {
	edges     []Edge
	remaining mapset.Set[int]
	// incident maps a vertex to the arena indices of edges it can leave by.
	incident map[int][]int
}

func newArena(edges []Edge, key func(Edge) (int, int), undirected bool) *arena {
	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, func(a, b Edge) int {
		a0, a1 := key(a)
		b0, b1 := key(b)
		return cmp.Or(cmp.Compare(a0, b0), cmp.Compare(a1, b1), cmp.Compare(a.Wall, b.Wall))
	})

	ar := &arena{
		edges:     sorted,
		remaining: mapset.New[int](),
		incident:  make(map[int][]int),
	}
	for i, e := range sorted {
		ar.remaining.Put(i)
		ar.incident[e.From] = append(ar.incident[e.From], i)
		if undirected && e.To != e.From {
			ar.incident[e.To] = append(ar.incident[e.To], i)
		}
	}
	return ar
}

// live returns the unconsumed edges incident to v, in arena order.
func (ar *arena) live(v int) []int {
	var out []int
	for _, i := range ar.incident[v] {
		if ar.remaining.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// chooser picks the next edge among candidates leaving cur, given the previous
// vertex. Candidates are already oriented to leave cur.
type chooser func(prev, cur int, candidates []Edge) (int, Reason)

// walk follows edges from the first arena edge until it returns to the start
// vertex.
func (ar *arena) walk(orient func(e Edge, cur int) Edge, choose chooser) ([]Edge, Reason) {
	start := ar.edges[0]
	ar.remaining.Remove(0)
	path := []Edge{start}

	visited := mapset.New[int]()
	visited.Put(start.From)
	prev, cur := start.From, start.To

	for {
		if cur == start.From {
			if len(path) > 2 {
				break
			}
			return nil, NonSimple
		}
		if visited.Has(cur) {
			return nil, NonSimple
		}
		visited.Put(cur)

		live := ar.live(cur)
		if len(live) == 0 {
			return nil, OpenLoop
		}
		candidates := make([]Edge, len(live))
		for i, idx := range live {
			candidates[i] = orient(ar.edges[idx], cur)
		}

		pick, reason := choose(prev, cur, candidates)
		if reason != "" {
			return nil, reason
		}
		ar.remaining.Remove(live[pick])
		next := candidates[pick]
		path = append(path, next)
		prev, cur = cur, next.To
	}

	if ar.remaining.Size() > 0 {
		return nil, Ambiguous
	}
	return path, ""
}

// forward drops candidates that lead straight back to prev, unless nothing
// else is available. It returns indices into candidates.
func forward(prev int, candidates []Edge) []int {
	var keep []int
	for i, c := range candidates {
		if c.To != prev {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		for i := range candidates {
			keep = append(keep, i)
		}
	}
	return keep
}

// DirectedWalk follows edges in their stored direction. At a vertex with
// several outgoing edges it takes the one with the smallest turn angle from
// the incoming direction, measured counter-clockwise in [0, 2π) with
// straight ahead at 0. Two candidates within AngleEpsilon of each other make
// the walk ambiguous.
type DirectedWalk struct {
	AngleEpsilon float64
}

func (DirectedWalk) Name() string { return "directed" }

func (w DirectedWalk) Walk(m *level.Map, edges []Edge) ([]Edge, Reason) {
	ar := newArena(edges, func(e Edge) (int, int) { return e.From, e.To }, false)
	keep := func(e Edge, _ int) Edge { return e }

	return ar.walk(keep, func(prev, cur int, candidates []Edge) (int, Reason) {
		options := forward(prev, candidates)
		if len(options) == 1 {
			return options[0], ""
		}

		pPrev, _ := m.Vertex(prev)
		pCur, _ := m.Vertex(cur)
		in := pCur.Sub(pPrev)

		best, bestAngle := -1, math.Inf(1)
		tie := false
		for _, i := range options {
			pNext, _ := m.Vertex(candidates[i].To)
			angle := turnAngle(in, pNext.Sub(pCur))
			switch {
			case best >= 0 && geom.NearlyEqual(angle, bestAngle, w.AngleEpsilon):
				tie = true
			case angle < bestAngle:
				best, bestAngle = i, angle
				tie = false
			}
		}
		if tie {
			return -1, Ambiguous
		}
		return best, ""
	})
}

// turnAngle returns the counter-clockwise angle from in to out in [0, 2π).
func turnAngle(in, out geom.Vec2) float64 {
	a := math.Atan2(geom.Cross(in, out), in.Dot(out))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// UndirectedWalk ignores stored edge direction and greedily extends the path
// through the first unconsumed edge touching the current vertex. It recovers
// loops from maps whose wall winding was authored inconsistently.
type UndirectedWalk struct{}

func (UndirectedWalk) Name() string { return "undirected" }

func (UndirectedWalk) Walk(_ *level.Map, edges []Edge) ([]Edge, Reason) {
	ar := newArena(edges, func(e Edge) (int, int) {
		return min(e.From, e.To), max(e.From, e.To)
	}, true)
	orient := func(e Edge, cur int) Edge {
		if e.From != cur {
			return e.flipped()
		}
		return e
	}

	return ar.walk(orient, func(prev, _ int, candidates []Edge) (int, Reason) {
		return forward(prev, candidates)[0], ""
	})
}
