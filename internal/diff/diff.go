// Package diff reconciles a mutated outline with the host text it was parsed from
package diff

import (
	"slices"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// Compute compares the rendering of before and after and returns the patch
// that turns the host text of before into after. It returns nil when both
// render the same text.
// This is the main entry point for reconciling an edited tree.
func Compute(before, after *model.Outline) *Patch {
	start, _ := before.Range()
	oldLines := strings.Split(before.Print(), "\n")
	newLines := strings.Split(after.Print(), "\n")

	from := model.Position{Line: start.Line, Ch: 0}
	to := model.Position{Line: start.Line + len(oldLines) - 1, Ch: len(oldLines[len(oldLines)-1])}

	// Strip whole lines shared at the end
	for len(oldLines) > 1 && len(newLines) > 1 && oldLines[len(oldLines)-1] == newLines[len(newLines)-1] {
		oldLines = oldLines[:len(oldLines)-1]
		newLines = newLines[:len(newLines)-1]
		to = model.Position{Line: to.Line - 1, Ch: len(oldLines[len(oldLines)-1])}
	}

	// Strip whole lines shared at the start
	for len(oldLines) > 1 && len(newLines) > 1 && oldLines[0] == newLines[0] {
		oldLines = oldLines[1:]
		newLines = newLines[1:]
		from.Line++
	}

	if slices.Equal(oldLines, newLines) {
		return nil
	}

	patch := &Patch{
		From: from,
		To:   to,
		Text: strings.Join(newLines, "\n"),
	}
	patch.Unfold, patch.Fold = foldOperations(before, after, model.Range{From: from, To: to})
	return patch
}

// foldOperations finds fold roots of before touched by the changed range and
// pairs each with the line its twin (same ID) occupies in after.
func foldOperations(before, after *model.Outline, changed model.Range) (unfold, fold []int) {
	afterByID := make(map[int64]*model.Item)
	after.Walk(func(item *model.Item) {
		afterByID[item.ID] = item
	})

	before.Walk(func(item *model.Item) {
		if !item.FoldRoot {
			return
		}
		twin, ok := afterByID[item.ID]
		if !ok {
			return
		}
		span := model.Range{
			From: before.FirstLineContentStart(item),
			To:   before.ContentEndIncludingChildren(item),
		}
		if span.Intersects(changed) {
			unfold = append(unfold, span.From.Line)
			fold = append(fold, after.FirstLineContentStart(twin).Line)
		}
	})

	descending := func(a, b int) int { return b - a }
	slices.SortFunc(unfold, descending)
	slices.SortFunc(fold, descending)
	return unfold, fold
}

// Apply writes the difference between before and after to w: unfold, replace,
// fold, then the selections of after. Selections are written even when the
// text did not change.
func Apply(w Writer, before, after *model.Outline) *Patch {
	patch := Compute(before, after)
	if patch != nil {
		for _, line := range patch.Unfold {
			w.Unfold(line)
		}
		w.ReplaceRange(patch.Text, patch.From, patch.To)
		for _, line := range patch.Fold {
			w.Fold(line)
		}
	}
	w.SetSelections(after.Selections())
	return patch
}
