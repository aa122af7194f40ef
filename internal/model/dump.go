package model

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                3,
}

// Dump returns a debug representation of any model value
func Dump(v any) string {
	return dumpConfig.Sdump(v)
}

// DumpTree returns one line per item: id, depth, fold flag and first line.
// Parent pointers make a full spew dump of a tree unreadable, this is the short form.
func DumpTree(o *Outline) string {
	var sb strings.Builder
	start, end := o.Range()
	fmt.Fprintf(&sb, "outline %s-%s selections=%s", start, end, strings.TrimSpace(Dump(o.selections)))
	sb.WriteString("\n")
	o.Walk(func(item *Item) {
		fold := ""
		if item.FoldRoot {
			fold = " [folded]"
		}
		fmt.Fprintf(&sb, "%s#%d %q%s\n", strings.Repeat("  ", item.Level()-1), item.ID, item.lines[0], fold)
	})
	return sb.String()
}
