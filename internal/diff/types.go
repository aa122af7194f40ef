package diff

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// Patch is the smallest line-aligned replacement that turns the host text of
// one outline into the rendering of another, plus the fold corrections that
// must surround it.
type Patch struct {
	From model.Position
	To   model.Position
	Text string

	// Unfold lists fold roots to clear before the replacement, bottom to top
	Unfold []int
	// Fold lists fold roots to set after the replacement, bottom to top
	Fold []int
}

// Writer is the write side of a host document
type Writer interface {
	ReplaceRange(text string, from, to model.Position)
	SetSelections(selections []model.Selection)
	Fold(line int)
	Unfold(line int)
}

// PatchLineType indicates the type of patch line for rendering
type PatchLineType int

const (
	PatchTypeHeader PatchLineType = iota
	PatchTypeRemoved
	PatchTypeAdded
	PatchTypeFold
	PatchTypeSummary
)

// PatchLine represents a rendered line in patch output
type PatchLine struct {
	Type    PatchLineType
	Content string
}
