package main

import (
	"io"

	"github.com/fatih/color"

	"github.com/pstuifzand/outline-engine/internal/diff"
)

var patchColors = map[diff.PatchLineType]*color.Color{
	diff.PatchTypeHeader:  color.New(color.FgCyan),
	diff.PatchTypeRemoved: color.New(color.FgRed),
	diff.PatchTypeAdded:   color.New(color.FgGreen),
	diff.PatchTypeFold:    color.New(color.FgYellow),
	diff.PatchTypeSummary: color.New(color.Faint),
}

// printPatch writes patch as a colored unified-style listing
func printPatch(w io.Writer, patch *diff.Patch, oldText string) {
	for _, line := range diff.BuildPatchLines(patch, oldText) {
		c, ok := patchColors[line.Type]
		if !ok {
			c = color.New()
		}
		_, _ = c.Fprintln(w, line.Content)
	}
}
