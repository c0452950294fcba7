package level

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"gopkg.in/yaml.v3"
)

// NoSector marks the solid side of a wall.
const NoSector = -1

type (
	// Map is one immutable snapshot of a level. Geometry functions never modify
	// it; an edit produces a new snapshot.
	Map struct {
		// Vertices is the shared, insertion-ordered vertex array. Walls refer to
		// vertices by index.
		Vertices []Vertex `yaml:"vertices"`
		// Sectors is the list of rooms. A sector's boundary is implicit: it is
		// formed by the walls that name it as their front (or back) sector.
		Sectors   []Sector   `yaml:"sectors"`
		Walls     []Wall     `yaml:"walls"`
		Doors     []Door     `yaml:"doors,omitempty"`
		Lights    []Light    `yaml:"lights,omitempty"`
		Particles []Particle `yaml:"particles,omitempty"`
		Entities  []Entity   `yaml:"entities,omitempty"`
	}

	Vertex struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}

	// Wall is a directed edge from V0 to V1. The direction is a modelling
	// convention; authored data may contain reversed edges.
	Wall struct {
		V0          int    `yaml:"v0"`
		V1          int    `yaml:"v1"`
		FrontSector int    `yaml:"front_sector"`
		BackSector  int    `yaml:"back_sector"`
		Texture     string `yaml:"texture,omitempty"`
		// EndLevel finishes the level when the wall is used.
		EndLevel bool `yaml:"end_level,omitempty"`
		// ToggleSector raises or lowers ToggleSectorID when the wall is used.
		ToggleSector   bool `yaml:"toggle_sector,omitempty"`
		ToggleSectorID int  `yaml:"toggle_sector_id,omitempty"`
		// DoorLinked marks walls that a door animates.
		DoorLinked bool `yaml:"door,omitempty"`
	}

	Sector struct {
		ID           int     `yaml:"id"`
		FloorZ       float64 `yaml:"floor_z"`
		CeilZ        float64 `yaml:"ceil_z"`
		FloorTexture string  `yaml:"floor_texture,omitempty"`
		CeilTexture  string  `yaml:"ceil_texture,omitempty"`
		Light        float64 `yaml:"light"`
	}

	// Door references a wall by index. It is not a boundary element.
	Door struct {
		ID         int     `yaml:"id"`
		Wall       int     `yaml:"wall"`
		OpenHeight float64 `yaml:"open_height"`
		Speed      float64 `yaml:"speed"`
	}

	Light struct {
		Position  Vertex  `yaml:"position"`
		Radius    float64 `yaml:"radius"`
		Intensity float64 `yaml:"intensity"`
		Color     string  `yaml:"color,omitempty"`
	}

	Particle struct {
		Position Vertex `yaml:"position"`
		// Emitter is the name of the particle emitter definition.
		Emitter string `yaml:"emitter"`
	}

	Entity struct {
		Position Vertex `yaml:"position"`
		// Class is the entity definition to spawn, e.g. "player_start".
		Class    string  `yaml:"class"`
		Rotation float64 `yaml:"rotation"`
	}
)

// Vec returns the vertex as a geometry vector.
func (v Vertex) Vec() geom.Vec2 {
	return geom.V(v.X, v.Y)
}

// VertexOf converts a geometry vector into a vertex.
func VertexOf(p geom.Vec2) Vertex {
	return Vertex{X: p[0], Y: p[1]}
}

func New() *Map {
	return &Map{
		Vertices: make([]Vertex, 0),
		Sectors:  make([]Sector, 0),
		Walls:    make([]Wall, 0),
	}
}

// IsEmpty reports whether the map has neither walls nor sectors.
func (m *Map) IsEmpty() bool {
	return len(m.Walls) == 0 && len(m.Sectors) == 0
}

// Vertex returns the position of vertex i. The second result is false when the
// index is out of range.
func (m *Map) Vertex(i int) (geom.Vec2, bool) {
	if i < 0 || i >= len(m.Vertices) {
		return geom.Vec2{}, false
	}
	return m.Vertices[i].Vec(), true
}

// WallSegment returns the endpoints of wall w. The second result is false when
// the wall index or one of its vertices is missing.
func (m *Map) WallSegment(w int) (geom.Vec2, geom.Vec2, bool) {
	if w < 0 || w >= len(m.Walls) {
		return geom.Vec2{}, geom.Vec2{}, false
	}
	a, okA := m.Vertex(m.Walls[w].V0)
	b, okB := m.Vertex(m.Walls[w].V1)
	if !okA || !okB {
		return geom.Vec2{}, geom.Vec2{}, false
	}
	return a, b, true
}

// SectorIndex returns the array index of the sector with the given id, or -1.
func (m *Map) SectorIndex(id int) int {
	for i, s := range m.Sectors {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// DoorIndex returns the array index of the door with the given id, or -1.
func (m *Map) DoorIndex(id int) int {
	for i, d := range m.Doors {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// NextSectorID returns an id not used by any sector.
func (m *Map) NextSectorID() int {
	next := 0
	for _, s := range m.Sectors {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// AddPolygonSector appends a sector whose boundary is one solid wall per edge
// of poly, in polygon order. Vertices that coincide exactly with existing ones
// are reused. It returns the indices of the new walls.
func (m *Map) AddPolygonSector(id int, poly []geom.Vec2) []int {
	m.Sectors = append(m.Sectors, Sector{ID: id, CeilZ: 1, Light: 1})

	indices := make([]int, len(poly))
	for i, p := range poly {
		indices[i] = m.vertexIndex(p)
	}

	walls := make([]int, 0, len(poly))
	for i := range indices {
		walls = append(walls, len(m.Walls))
		m.Walls = append(m.Walls, Wall{
			V0:          indices[i],
			V1:          indices[(i+1)%len(indices)],
			FrontSector: id,
			BackSector:  NoSector,
		})
	}
	return walls
}

func (m *Map) vertexIndex(p geom.Vec2) int {
	for i, v := range m.Vertices {
		if v.X == p[0] && v.Y == p[1] {
			return i
		}
	}
	m.Vertices = append(m.Vertices, VertexOf(p))
	return len(m.Vertices) - 1
}

func (m *Map) Save(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return m.Encode(f)
}

// Encode writes the map as YAML with the canonical 4-space indentation.
func (m *Map) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(m)
}

func (m *Map) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Load reads a map snapshot from a YAML file.
func Load(path string) (*Map, error) {
	m := New()
	if err := m.Load(path); err != nil {
		return nil, err
	}
	return m, nil
}
