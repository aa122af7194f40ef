// Package runner drives one outliner edit: parse the outline under the cursor,
// run an operation on it, and write the difference back to the host.
package runner

import (
	"errors"
	"io"
	"log"

	"github.com/pstuifzand/outline-engine/internal/diff"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/parser"
)

// ErrStaleSnapshot is returned when the document changed after a snapshot was taken
var ErrStaleSnapshot = errors.New("document changed since the snapshot was taken")

// Document is a host document the runner can read and write
type Document interface {
	parser.Reader
	diff.Writer
	Cursor() model.Position
}

// Builder binds an operation to a freshly parsed outline
type Builder func(outline *model.Outline) operations.Operation

// Result tells the caller what happened to the key press
type Result struct {
	Updated         bool
	StopPropagation bool
	// Patch is what was written, nil when only the selections changed
	Patch *diff.Patch
}

// Options configures a Runner
type Options struct {
	Logger *log.Logger
	Mode   ModePort
	// Debug logs the item tree before and after every applied operation
	Debug bool
}

// Runner runs operations against a host document
type Runner struct {
	parser *parser.Parser
	log    *log.Logger
	mode   ModePort
	debug  bool
}

// New creates a runner. Missing options get null-object defaults.
func New(p *parser.Parser, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	mode := opts.Mode
	if mode == nil {
		mode = AlwaysEditable{}
	}
	return &Runner{parser: p, log: logger, mode: mode, debug: opts.Debug}
}

// Parser returns the parser used by the runner
func (r *Runner) Parser() *parser.Parser {
	return r.parser
}

// Run parses the outline at cursor, runs the operation built for it and
// writes the result to doc. When there is no outline at cursor nothing happens
// and the host should apply its default behavior.
func (r *Runner) Run(build Builder, doc Document, cursor model.Position) Result {
	if !r.mode.Editable() {
		return Result{}
	}
	outline, err := r.parser.Parse(doc, cursor.Line)
	if err != nil {
		r.log.Printf("no outline at %s: %v", cursor, err)
		return Result{}
	}
	return r.Eval(outline, build(outline), doc)
}

// Eval runs op on outline and writes the difference to doc
func (r *Runner) Eval(outline *model.Outline, op operations.Operation, doc Document) Result {
	before := outline.Clone()
	op.Perform()

	res := Result{Updated: op.ShouldUpdate(), StopPropagation: op.ShouldStopPropagation()}
	if res.Updated {
		patch := diff.Apply(doc, before, outline)
		res.Patch = patch
		if patch != nil {
			r.log.Printf("%T: replaced %s-%s, unfold=%v fold=%v", op, patch.From, patch.To, patch.Unfold, patch.Fold)
		} else {
			r.log.Printf("%T: selections only", op)
		}
		if r.debug {
			r.log.Printf("before:\n%safter:\n%s", model.DumpTree(before), model.DumpTree(outline))
		}
	}
	return res
}

// Snapshot parses the outline at line so a later Move can check it is still current
func (r *Runner) Snapshot(doc Document, line int) (*model.Outline, error) {
	return r.parser.Parse(doc, line)
}

// Move applies a drag and drop move prepared on snapshot. The window is parsed
// again first and the move is discarded when it no longer matches the snapshot.
func (r *Runner) Move(doc Document, snapshot *model.Outline, item, target *model.Item, placement operations.Placement, defaultIndent string) (Result, error) {
	start, _ := snapshot.Range()
	current, err := r.parser.Parse(doc, start.Line)
	if err != nil || !parser.SameWindow(snapshot, current) {
		r.log.Printf("move discarded: %v", ErrStaleSnapshot)
		return Result{}, ErrStaleSnapshot
	}
	op := operations.NewMoveToPosition(snapshot, item, target, placement, defaultIndent)
	return r.Eval(snapshot, op, doc), nil
}
