package linter

import (
	"fmt"
	"io"
	"strings"

	"github.com/bloodmagesoftware/sectorgeo/boundary"
	"github.com/bloodmagesoftware/sectorgeo/level"
)

// Violation is one malformed element of a map snapshot.
type Violation struct {
	// Element names the offending element, e.g. "wall 3".
	Element string
	Reason  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Element, v.Reason)
}

// Lint checks m for malformed references and unextractable sectors. The
// geometry functions skip such elements; Lint makes them visible.
func Lint(m *level.Map) []Violation {
	var violations []Violation
	add := func(element string, format string, args ...any) {
		violations = append(violations, Violation{Element: element, Reason: fmt.Sprintf(format, args...)})
	}

	known := make(map[int]bool, len(m.Sectors))
	for _, s := range m.Sectors {
		if known[s.ID] {
			add(fmt.Sprintf("sector %d", s.ID), "duplicate sector id")
		}
		known[s.ID] = true
	}

	for i, w := range m.Walls {
		element := fmt.Sprintf("wall %d", i)
		if _, _, ok := m.WallSegment(i); !ok {
			add(element, "references missing vertex (%d, %d)", w.V0, w.V1)
		}
		if w.FrontSector != level.NoSector && !known[w.FrontSector] {
			add(element, "front sector %d does not exist", w.FrontSector)
		}
		if w.BackSector != level.NoSector && !known[w.BackSector] {
			add(element, "back sector %d does not exist", w.BackSector)
		}
		if w.ToggleSector && !known[w.ToggleSectorID] {
			add(element, "toggled sector %d does not exist", w.ToggleSectorID)
		}
	}

	for _, d := range m.Doors {
		element := fmt.Sprintf("door %d", d.ID)
		if d.Wall < 0 || d.Wall >= len(m.Walls) {
			add(element, "references missing wall %d", d.Wall)
			continue
		}
		if _, _, ok := m.WallSegment(d.Wall); !ok {
			add(element, "wall %d references a missing vertex", d.Wall)
		}
	}

	for _, s := range m.Sectors {
		if _, err := boundary.Extract(m, s.ID); err != nil {
			reason, _ := boundary.ReasonOf(err)
			add(fmt.Sprintf("sector %d", s.ID), "boundary cannot be extracted: %s", reason)
		}
	}

	return violations
}

// Check returns an error when m has any violation.
func Check(m *level.Map) error {
	if n := len(Lint(m)); n > 0 {
		return fmt.Errorf("linter failed: found %d violations", n)
	}
	return nil
}

// Report writes violations found in the map file at path.
func Report(w io.Writer, path string, violations []Violation) {
	for _, v := range violations {
		fmt.Fprintf(w,
			"  [ERROR] File: %s\n"+
				"    Element: %s\n"+
				"    Reason: %s\n",
			path, v.Element, v.Reason,
		)
		fmt.Fprintln(w, strings.Repeat("-", 60))
	}
}
