package operations

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// Enter is what the Enter key does inside an outline: an empty nested item
// is outdented, anything else is split into a new item.
type Enter struct {
	outdent *OutdentIfEmpty
	create  *CreateItem
	applied Operation
}

// NewEnter creates the operation
func NewEnter(outline *model.Outline, ids *model.IDAllocator, defaultIndent string, zoom ZoomPort) *Enter {
	return &Enter{
		outdent: NewOutdentIfEmpty(outline),
		create:  NewCreateItem(outline, ids, defaultIndent, zoom),
	}
}

// Perform tries the outdent first and falls back to creating an item
func (op *Enter) Perform() {
	op.outdent.Perform()
	if op.outdent.ShouldUpdate() {
		op.applied = op.outdent
		return
	}
	op.create.Perform()
	op.applied = op.create
}

func (op *Enter) ShouldUpdate() bool {
	return op.applied != nil && op.applied.ShouldUpdate()
}

func (op *Enter) ShouldStopPropagation() bool {
	return op.applied != nil && op.applied.ShouldStopPropagation()
}
