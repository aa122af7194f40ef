package model

import "fmt"

// Position is a line and column in the host document.
// Both Line and Ch are 0-indexed, Ch counts bytes from the start of the line.
type Position struct {
	Line int
	Ch   int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Ch)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Ch < other.Ch:
		return -1
	case p.Ch > other.Ch:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// MinPos returns the earlier of two positions.
func MinPos(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPos returns the later of two positions.
func MaxPos(a, b Position) Position {
	if a.Before(b) {
		return b
	}
	return a
}

// Range is a span between two positions, From <= To.
type Range struct {
	From Position
	To   Position
}

// Intersects reports whether two ranges share at least one position.
func (r Range) Intersects(other Range) bool {
	return !r.To.Before(other.From) && !other.To.Before(r.From)
}

// Selection represents a selected span.
// Anchor is where the selection started; Head is where the cursor is.
// When Anchor == Head the selection is a plain cursor.
type Selection struct {
	Anchor Position
	Head   Position
}

// CursorAt returns a collapsed selection at p.
func CursorAt(p Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsCursor returns true if the selection has no extent.
func (s Selection) IsCursor() bool {
	return s.Anchor == s.Head
}

// From returns the lower bound of the selection.
func (s Selection) From() Position {
	return MinPos(s.Anchor, s.Head)
}

// To returns the upper bound of the selection.
func (s Selection) To() Position {
	return MaxPos(s.Anchor, s.Head)
}
