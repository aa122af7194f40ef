// Package operations implements outliner editing commands as in-memory
// transformations of a parsed outline. Operations never touch host text,
// the runner diffs the tree before and after and writes the difference.
package operations

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// Operation is one outliner command bound to an outline
type Operation interface {
	// Perform mutates the outline in memory
	Perform()
	// ShouldUpdate reports whether the outline changed and must be written back
	ShouldUpdate() bool
	// ShouldStopPropagation reports whether the host should skip its own handling of the key
	ShouldStopPropagation() bool
}

// result carries the two flags every operation reports
type result struct {
	updated         bool
	stopPropagation bool
}

func (r *result) ShouldUpdate() bool {
	return r.updated
}

func (r *result) ShouldStopPropagation() bool {
	return r.stopPropagation
}

// handled marks the key as consumed and the tree as changed
func (r *result) handled() {
	r.updated = true
	r.stopPropagation = true
}

// ZoomPort exposes the range the host is currently zoomed into, if any
type ZoomPort interface {
	ZoomRange() (model.Range, bool)
}

// NoZoom is the ZoomPort for hosts without zooming
type NoZoom struct{}

// ZoomRange always reports no zoom
func (NoZoom) ZoomRange() (model.Range, bool) {
	return model.Range{}, false
}

func isEmptyLineOrEmptyCheckbox(line string) bool {
	return line == "" || line == "[ ] "
}
