package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/export"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

func newExportCommand(g *globalOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Print the lists of a file as normalized markdown or as a JSON tree",
		Example: `  # Re-indent every list with two spaces per level
  outline-apply export notes.md --indent "  " -w

  # Dump the item trees
  outline-apply export notes.md --format json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewTextStore(args[0])
			doc, err := store.Load()
			if err != nil {
				return err
			}
			eng, err := g.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p := eng.runner.Parser()

			var text string
			switch format {
			case "markdown", "md":
				text = export.Document(p, doc, eng.settings.DefaultIndent)
			case "json":
				data, err := export.JSON(p, doc)
				if err != nil {
					return err
				}
				text = string(data)
			default:
				return fmt.Errorf("unknown format %q, use markdown or json", format)
			}

			switch {
			case output != "":
				if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
			case g.write && format != "json":
				if err := store.Save(buffer.New(text)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", store.FilePath)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "markdown or json")
	cmd.Flags().StringVarP(&output, "output", "O", "", "write to this file instead of stdout")
	return cmd
}
