package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/commands"
	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/parser"
	"github.com/pstuifzand/outline-engine/internal/runner"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

// globalOptions are the flags shared by all commands
type globalOptions struct {
	configPath string
	indent     string
	write      bool
	noColor    bool
	debug      bool
}

// engine is a runner set up from the configuration
type engine struct {
	runner   *runner.Runner
	env      commands.Env
	settings config.Snapshot
}

func (g *globalOptions) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/outline-engine/config.toml)")
	cmd.PersistentFlags().StringVar(&g.indent, "indent", "", `indent unit for new levels, "\t" for a tab`)
	cmd.PersistentFlags().BoolVarP(&g.write, "write", "w", false, "write the result back to the file")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "log parser and runner diagnostics to stderr")
}

func (g *globalOptions) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFromFile(g.configPath)
	}
	return config.Load()
}

// newEngine builds the parser and runner, logging to stderr when debugging
func (g *globalOptions) newEngine(stderr io.Writer) (*engine, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if g.indent != "" {
		cfg.Set("indent", strings.ReplaceAll(g.indent, `\t`, "\t"))
	}
	settings := cfg.Snapshot()

	out := io.Discard
	if g.debug || settings.Debug {
		out = stderr
	}

	ids := model.NewIDAllocator()
	p := parser.New(ids, parser.Options{
		CheckboxInPrefix: settings.CheckboxInPrefix,
		Logger:           log.New(out, "[PARSER] ", log.LstdFlags),
	})
	return &engine{
		runner: runner.New(p, runner.Options{
			Logger: log.New(out, "[RUNNER] ", log.LstdFlags),
			Debug:  out != io.Discard,
		}),
		env: commands.Env{
			IDs:           ids,
			DefaultIndent: settings.DefaultIndent,
			Zoom:          operations.NoZoom{},
		},
		settings: settings,
	}, nil
}

// finish prints the patch and, with --write, saves the document
func (g *globalOptions) finish(cmd *cobra.Command, store *storage.TextStore, doc *buffer.Document, oldText string, res runner.Result) error {
	printPatch(cmd.OutOrStdout(), res.Patch, oldText)
	cur := doc.Cursor()
	fmt.Fprintf(cmd.OutOrStdout(), "cursor %d:%d\n", cur.Line+1, cur.Ch)

	if !g.write || res.Patch == nil {
		return nil
	}
	if err := store.Save(doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", store.FilePath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", store.FilePath)
	return nil
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}
	var (
		opName string
		line   int
		ch     int
	)

	cmd := &cobra.Command{
		Use:   "outline-apply FILE",
		Short: "Apply an outliner operation to a markdown file",
		Long: `Apply one outliner operation at a cursor position and print the patch.

The operation name is matched fuzzily, so "indnt" finds "indent".

Examples:
  # Indent the item on line 3
  outline-apply notes.md --op indent --line 3

  # Split the item on line 2 at column 5 and save
  outline-apply notes.md --op enter --line 2 --ch 5 -w`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, g, args[0], opName, line, ch)
		},
	}
	g.addFlags(cmd)
	cmd.Flags().StringVarP(&opName, "op", "o", "", "operation to apply (see 'outline-apply list')")
	cmd.Flags().IntVarP(&line, "line", "l", 1, "cursor line, starting at 1")
	cmd.Flags().IntVarP(&ch, "ch", "c", -1, "cursor column in bytes, -1 for the end of the line")
	_ = cmd.MarkFlagRequired("op")

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newMoveCommand(g))
	cmd.AddCommand(newBackupsCommand())
	cmd.AddCommand(newExportCommand(g))
	cmd.AddCommand(newFindCommand(g))
	return cmd
}

// cursorAt converts a 1-based line and a byte column to a position in doc
func cursorAt(doc *buffer.Document, line, ch int) (model.Position, error) {
	if line < 1 || line > doc.LineCount() {
		return model.Position{}, fmt.Errorf("line %d out of range 1-%d", line, doc.LineCount())
	}
	text := doc.Line(line - 1)
	if ch < 0 || ch > len(text) {
		ch = len(text)
	}
	return model.Position{Line: line - 1, Ch: ch}, nil
}

func runApply(cmd *cobra.Command, g *globalOptions, path, opName string, line, ch int) error {
	op, ok := commands.Resolve(opName)
	if !ok {
		return fmt.Errorf("unknown operation %q", opName)
	}

	store := storage.NewTextStore(path)
	doc, err := store.Load()
	if err != nil {
		return err
	}
	cursor, err := cursorAt(doc, line, ch)
	if err != nil {
		return err
	}
	doc.SetCursor(cursor)

	eng, err := g.newEngine(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	oldText := doc.Text()
	res := eng.runner.Run(op.Builder(eng.env), doc, cursor)
	if !res.StopPropagation {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s does not apply at %d:%d\n", op.Name, line, cursor.Ch)
	}
	return g.finish(cmd, store, doc, oldText, res)
}
