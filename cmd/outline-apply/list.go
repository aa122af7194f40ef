package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/commands"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [QUERY]",
		Short: "List operations, best fuzzy match first when a query is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			found := commands.Find(query)
			if len(found) == 0 {
				return fmt.Errorf("no operation matches %q", query)
			}

			width := 0
			for _, c := range found {
				width = max(width, len(c.Name))
			}
			name := color.New(color.Bold)
			desc := color.New(color.Faint)
			out := cmd.OutOrStdout()
			for _, c := range found {
				name.Fprintf(out, "%-*s", width+2, c.Name)
				desc.Fprintln(out, c.Description)
			}
			return nil
		},
	}
}
