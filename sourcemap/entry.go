package sourcemap

import (
	"cmp"
	"fmt"
)

// Entry associates a generated position with an optional original position.
// SourceURL is empty when no source is attributed to the generated position;
// such an entry ends the range of the previous attributed entry.
type Entry struct {
	GeneratedLine   int
	GeneratedColumn int

	SourceURL    string
	SourceLine   int
	SourceColumn int

	// Name is the resolved names[] entry of a five-field segment, if any.
	Name string
}

// HasSource reports whether the entry is attributed to a source.
func (e Entry) HasSource() bool {
	return e.SourceURL != ""
}

// String formats the entry as "line:col -> url:line:col".
func (e Entry) String() string {
	if !e.HasSource() {
		return fmt.Sprintf("%d:%d", e.GeneratedLine, e.GeneratedColumn)
	}

	s := fmt.Sprintf("%d:%d -> %s:%d:%d", e.GeneratedLine, e.GeneratedColumn, e.SourceURL, e.SourceLine, e.SourceColumn)
	if e.Name != "" {
		s += " (" + e.Name + ")"
	}

	return s
}

func compareGenerated(a, b Entry) int {
	return comparePosition(a.GeneratedLine, a.GeneratedColumn, b.GeneratedLine, b.GeneratedColumn)
}

func compareSource(a, b Entry) int {
	return comparePosition(a.SourceLine, a.SourceColumn, b.SourceLine, b.SourceColumn)
}

func comparePosition(line1, col1, line2, col2 int) int {
	if c := cmp.Compare(line1, line2); c != 0 {
		return c
	}

	return cmp.Compare(col1, col2)
}
