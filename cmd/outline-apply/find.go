package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/search"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

func newFindCommand(g *globalOptions) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "find FILE QUERY",
		Short: "Print the items of a file that match a query",
		Long: `Print the items of a file that match a query, one per line with its 1-based line number.

Query syntax:
  word "two words"   content contains the text, case-insensitive
  ~abc               first line fuzzy-matches abc
  /regex/            content matches the regular expression
  d:0 d:>1           depth, top level items have depth 0
  children:>2        number of children
  is:todo is:done    checkbox state, also is:checkbox is:folded is:numbered is:notes
  p:Q a:Q            parent or any ancestor matches Q (parent*:Q is a:Q)
  child:Q child*:Q   a child or descendant matches Q
  s:Q                a sibling matches Q
  +child:Q -child:Q  all or none of the related items match Q
  a b, a | b, -a     and, or, not, with parentheses for grouping`,
		Example: `  # Open tasks below the "Work" item
  outline-apply find notes.md 'is:todo a:work'`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := storage.NewTextStore(args[0]).Load()
			if err != nil {
				return err
			}
			eng, err := g.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			expr, err := search.ParseQuery(args[1])
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}

			out := cmd.OutOrStdout()
			if explain {
				fmt.Fprintln(out, search.ExpressionString(expr))
			}

			outlines := eng.runner.Parser().ParseRange(doc, 0, doc.LastLine())
			matches := search.FindMatches(outlines, expr)
			if len(matches) == 0 {
				return fmt.Errorf("no item matches %q", args[1])
			}

			lineNo := color.New(color.FgYellow)
			reason := color.New(color.Faint)
			for _, m := range matches {
				lineNo.Fprintf(out, "%d:", m.Line+1)
				fmt.Fprintf(out, " %s", strings.TrimSpace(doc.Line(m.Line)))
				if explain {
					reason.Fprintf(out, "  (%s)", search.Explain(m.Item, expr))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "print the parsed query and why each item matched")
	return cmd
}
