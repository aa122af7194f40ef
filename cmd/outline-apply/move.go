package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/runner"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

func newMoveCommand(g *globalOptions) *cobra.Command {
	var (
		line  int
		to    int
		where string
	)

	cmd := &cobra.Command{
		Use:   "move FILE",
		Short: "Move the item on one line before, after or inside the item on another",
		Example: `  # Make the item on line 5 the first child of the item on line 1
  outline-apply move notes.md --line 5 --to 1 --where inside`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			placement, err := operations.ParsePlacement(where)
			if err != nil {
				return err
			}

			store := storage.NewTextStore(args[0])
			doc, err := store.Load()
			if err != nil {
				return err
			}
			source, err := cursorAt(doc, line, 0)
			if err != nil {
				return err
			}
			if _, err := cursorAt(doc, to, 0); err != nil {
				return err
			}

			eng, err := g.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			snapshot, err := eng.runner.Snapshot(doc, source.Line)
			if err != nil {
				return fmt.Errorf("line %d is not in a list: %w", line, err)
			}
			item := snapshot.ItemUnderLine(source.Line)
			target := snapshot.ItemUnderLine(to - 1)
			if item == nil || target == nil {
				return fmt.Errorf("lines %d and %d must be items of the same list", line, to)
			}

			oldText := doc.Text()
			res, err := eng.runner.Move(doc, snapshot, item, target, placement, eng.settings.DefaultIndent)
			if errors.Is(err, runner.ErrStaleSnapshot) {
				return fmt.Errorf("list changed while moving: %w", err)
			}
			if err != nil {
				return err
			}
			return g.finish(cmd, store, doc, oldText, res)
		},
	}
	cmd.Flags().IntVarP(&line, "line", "l", 1, "line of the item to move, starting at 1")
	cmd.Flags().IntVarP(&to, "to", "t", 1, "line of the target item, starting at 1")
	cmd.Flags().StringVar(&where, "where", "before", "before, after or inside the target")
	return cmd
}
