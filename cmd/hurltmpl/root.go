package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AlexanderGrooff/hurl-template-go/cmd/hurltmpl/enum"
	"github.com/AlexanderGrooff/hurl-template-go/cmd/hurltmpl/log"
	"github.com/AlexanderGrooff/hurl-template-go/pkg/diagnostic"
)

// errReported is returned once a diagnostic has already been written, so
// main only sets the exit code.
var errReported = errors.New("error reported")

// app carries the state shared by all subcommands of one invocation.
type app struct {
	logger *slog.Logger
	color  string
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), color: "auto"}

	cmd := &cobra.Command{
		Use:   "hurltmpl",
		Short: "Parse and render Hurl template strings",
		Long: `hurltmpl parses the string values of Hurl request files: bare and quoted
values with JSON-style escapes and {{ variable }} interpolations.

It prints the parsed structure, decodes escapes, or renders a value against a
set of variables, pointing at the exact column of any syntax error.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	log.RegisterLoggingFlags(cmd)
	enum.Var(cmd.PersistentFlags(), "color", []string{"auto", "always", "never"}, "Color diagnostics: auto, always, never")

	cmd.AddCommand(newParseCmd(a))
	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newDecodeCmd(a))
	cmd.AddCommand(newProfileCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup reads the global flags and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	color, err := enum.Get(cmd.Flags(), "color")
	if err != nil {
		return err
	}
	a.color = color
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// colorEnabled resolves the --color flag for output written to w.
func (a *app) colorEnabled(w io.Writer) bool {
	switch a.color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// report writes a diagnostic for err against source on the error stream.
func (a *app) report(cmd *cobra.Command, source string, err error) error {
	w := cmd.ErrOrStderr()
	if werr := diagnostic.Report(w, diagnostic.NewStyles(a.colorEnabled(w)), source, err); werr != nil {
		return werr
	}
	return errReported
}

// readInput returns the text to work on: the content of file when set, the
// single positional argument otherwise. A file's final line break is not part
// of the value.
func readInput(file string, args []string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", errors.New("pass either --file or an argument, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		s := strings.TrimSuffix(string(data), "\n")
		return strings.TrimSuffix(s, "\r"), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New("nothing to read: pass --file or an argument")
	}
}
