package level

import "fmt"

// Kind is the closed set of selectable map elements.
type Kind int

const (
	KindSector Kind = iota
	KindWall
	KindDoor
	KindLight
	KindParticle
	KindEntity
)

func (k Kind) String() string {
	switch k {
	case KindSector:
		return "sector"
	case KindWall:
		return "wall"
	case KindDoor:
		return "door"
	case KindLight:
		return "light"
	case KindParticle:
		return "particle"
	case KindEntity:
		return "entity"
	}
	panic(fmt.Sprintf("level: unknown selection kind %d", int(k)))
}

// Selection refers to exactly one map element. Doors are referenced by id,
// sectors by sector id, everything else by array index. It is a plain value:
// the element may disappear in the next snapshot, so callers re-resolve it
// with Exists before use.
type Selection struct {
	Kind  Kind
	Index int
}

func (s Selection) String() string {
	return fmt.Sprintf("%s %d", s.Kind, s.Index)
}

// Exists reports whether the referenced element is present in m.
func (s Selection) Exists(m *Map) bool {
	switch s.Kind {
	case KindSector:
		return m.SectorIndex(s.Index) >= 0
	case KindWall:
		return s.Index >= 0 && s.Index < len(m.Walls)
	case KindDoor:
		return m.DoorIndex(s.Index) >= 0
	case KindLight:
		return s.Index >= 0 && s.Index < len(m.Lights)
	case KindParticle:
		return s.Index >= 0 && s.Index < len(m.Particles)
	case KindEntity:
		return s.Index >= 0 && s.Index < len(m.Entities)
	}
	panic(fmt.Sprintf("level: unhandled selection kind %d", int(s.Kind)))
}
