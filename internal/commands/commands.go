// Package commands names the outliner operations so hosts can bind them to
// keys, list them in a palette or pick them from the command line.
package commands

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/runner"
)

// Env is what operations need besides the outline
type Env struct {
	IDs           *model.IDAllocator
	DefaultIndent string
	Zoom          operations.ZoomPort
}

// Command is a named operation
type Command struct {
	Name        string
	Description string
	Build       func(o *model.Outline, env Env) operations.Operation
}

// Builder binds the command to env for use with a runner
func (c Command) Builder(env Env) runner.Builder {
	return func(o *model.Outline) operations.Operation {
		return c.Build(o, env)
	}
}

var registry = []Command{
	{
		Name:        "enter",
		Description: "Outdent an empty item or split the item at the cursor",
		Build: func(o *model.Outline, env Env) operations.Operation {
			return operations.NewEnter(o, env.IDs, env.DefaultIndent, env.Zoom)
		},
	},
	{
		Name:        "create-item",
		Description: "Split the item at the cursor into a new item",
		Build: func(o *model.Outline, env Env) operations.Operation {
			return operations.NewCreateItem(o, env.IDs, env.DefaultIndent, env.Zoom)
		},
	},
	{
		Name:        "create-note-line",
		Description: "Continue the item on a new note line",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewCreateNoteLine(o)
		},
	},
	{
		Name:        "indent",
		Description: "Make the item a child of its previous sibling",
		Build: func(o *model.Outline, env Env) operations.Operation {
			return operations.NewIndent(o, env.DefaultIndent)
		},
	},
	{
		Name:        "outdent",
		Description: "Move the item after its parent",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewOutdent(o)
		},
	},
	{
		Name:        "outdent-if-empty",
		Description: "Outdent the item when it has no content",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewOutdentIfEmpty(o)
		},
	},
	{
		Name:        "merge-with-previous",
		Description: "Join the line with the line above",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewMergeWithPrevious(o)
		},
	},
	{
		Name:        "merge-with-next",
		Description: "Join the next line into this one",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewMergeWithNext(o)
		},
	},
	{
		Name:        "delete-till-line-start",
		Description: "Delete from the cursor back to the content start",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewDeleteTillLineStart(o)
		},
	},
	{
		Name:        "move-up",
		Description: "Move the item above its previous sibling",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewMoveUp(o)
		},
	},
	{
		Name:        "move-down",
		Description: "Move the item below its next sibling",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewMoveDown(o)
		},
	},
	{
		Name:        "select-all",
		Description: "Select the item, then its subtree, then the list",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewSelectAll(o)
		},
	},
	{
		Name:        "ensure-cursor-unfolded",
		Description: "Move the cursor out of folded lines",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewEnsureCursorUnfolded(o)
		},
	},
	{
		Name:        "ensure-cursor-in-content",
		Description: "Move the cursor off the bullet",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewEnsureCursorInContent(o)
		},
	},
	{
		Name:        "move-cursor-to-previous-unfolded-line",
		Description: "Jump to the end of the previous visible line",
		Build: func(o *model.Outline, _ Env) operations.Operation {
			return operations.NewMoveCursorToPreviousUnfoldedLine(o)
		},
	},
}

// All returns every command in registration order
func All() []Command {
	result := make([]Command, len(registry))
	copy(result, registry)
	return result
}

// Lookup finds a command by its exact name
func Lookup(name string) (Command, bool) {
	for _, c := range registry {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Find returns the commands whose name fuzzy matches query, best match first.
// An empty query returns all commands.
func Find(query string) []Command {
	if query == "" {
		return All()
	}
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)

	result := make([]Command, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, registry[rank.OriginalIndex])
	}
	return result
}

// Resolve returns the exact match for name or the single best fuzzy match
func Resolve(name string) (Command, bool) {
	if c, ok := Lookup(name); ok {
		return c, true
	}
	found := Find(name)
	if name == "" || len(found) == 0 {
		return Command{}, false
	}
	return found[0], true
}
