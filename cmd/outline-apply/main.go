// Command outline-apply runs one outliner operation on a markdown file and
// prints the resulting patch.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
