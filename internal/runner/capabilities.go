package runner

import (
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
)

// ModePort tells whether the host currently accepts outliner edits.
// Hosts with a modal command mode return false outside of insert mode.
type ModePort interface {
	Editable() bool
}

// AlwaysEditable is the ModePort for hosts without modes
type AlwaysEditable struct{}

// Editable always returns true
func (AlwaysEditable) Editable() bool {
	return true
}

// ModeFunc adapts a function to ModePort
type ModeFunc func() bool

// Editable calls f
func (f ModeFunc) Editable() bool {
	return f()
}

// StaticZoom is a ZoomPort with a fixed range, used by hosts that zoom into one item
type StaticZoom struct {
	Range  model.Range
	Active bool
}

// ZoomRange returns the configured range when active
func (z StaticZoom) ZoomRange() (model.Range, bool) {
	return z.Range, z.Active
}

var (
	_ operations.ZoomPort = StaticZoom{}
	_ operations.ZoomPort = operations.NoZoom{}
	_ ModePort            = AlwaysEditable{}
	_ ModePort            = ModeFunc(nil)
)
