package operations

import (
	"regexp"
	"strconv"

	"github.com/pstuifzand/outline-engine/internal/model"
)

var numericBulletRe = regexp.MustCompile(`^\d+\.$`)

// Renumber rewrites numeric bullets so each sibling group counts 1., 2., 3., ...
// Non-numeric siblings are skipped and do not consume a number.
func Renumber(outline *model.Outline) {
	renumberChildren(outline.Root())
}

func renumberChildren(parent *model.Item) {
	index := 1
	for _, child := range parent.Children {
		if IsNumberedBullet(child.Bullet) {
			child.Bullet = strconv.Itoa(index) + "."
			index++
		}
		renumberChildren(child)
	}
}

// IsNumberedBullet reports whether bullet is an ordered list marker like "3."
func IsNumberedBullet(bullet string) bool {
	return numericBulletRe.MatchString(bullet)
}
