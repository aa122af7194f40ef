package diff

import (
	"fmt"
	"strings"
)

// BuildPatchLines converts a patch into display lines.
// oldText is the host text the patch applies to.
func BuildPatchLines(patch *Patch, oldText string) []PatchLine {
	if patch == nil {
		return []PatchLine{{Type: PatchTypeSummary, Content: "no changes"}}
	}

	var lines []PatchLine
	lines = append(lines, PatchLine{
		Type:    PatchTypeHeader,
		Content: fmt.Sprintf("@@ %s-%s @@", patch.From, patch.To),
	})

	oldLines := strings.Split(oldText, "\n")
	for l := patch.From.Line; l <= patch.To.Line && l < len(oldLines); l++ {
		lines = append(lines, PatchLine{Type: PatchTypeRemoved, Content: "-" + oldLines[l]})
	}
	for _, line := range strings.Split(patch.Text, "\n") {
		lines = append(lines, PatchLine{Type: PatchTypeAdded, Content: "+" + line})
	}

	for _, line := range patch.Unfold {
		lines = append(lines, PatchLine{Type: PatchTypeFold, Content: fmt.Sprintf("unfold %d", line)})
	}
	for _, line := range patch.Fold {
		lines = append(lines, PatchLine{Type: PatchTypeFold, Content: fmt.Sprintf("fold %d", line)})
	}

	removed := patch.To.Line - patch.From.Line + 1
	added := strings.Count(patch.Text, "\n") + 1
	lines = append(lines, PatchLine{
		Type:    PatchTypeSummary,
		Content: fmt.Sprintf("%d lines replaced by %d", removed, added),
	})
	return lines
}
