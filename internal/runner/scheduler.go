package runner

import (
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
)

// Scheduler runs a callback once the host has finished handling the current event
type Scheduler interface {
	Defer(fn func())
}

// Queue is a Scheduler for hosts with their own event loop: callbacks wait
// until the host calls Drain after dispatching an event.
type Queue struct {
	pending []func()
}

// Defer queues fn
func (q *Queue) Defer(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of queued callbacks
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain runs queued callbacks, including ones queued while draining, and
// returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending = q.pending[1:]
		fn()
		ran++
	}
	return ran
}

// GuardCursor schedules the cursor guards for after the host placed the cursor:
// out of folded lines, then (when keepInContent is set) off the bullet prefix.
// Running it on a valid cursor changes nothing.
func (r *Runner) GuardCursor(s Scheduler, doc Document, keepInContent bool) {
	s.Defer(func() {
		r.Run(func(o *model.Outline) operations.Operation {
			return operations.NewEnsureCursorUnfolded(o)
		}, doc, doc.Cursor())

		if keepInContent {
			r.Run(func(o *model.Outline) operations.Operation {
				return operations.NewEnsureCursorInContent(o)
			}, doc, doc.Cursor())
		}
	})
}
