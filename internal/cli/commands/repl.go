package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leaplogic/internal/analysis"
	"github.com/leapstack-labs/leaplogic/internal/cli/output"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
	"github.com/spf13/cobra"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt",
		Long: `Read formulas line by line and print, for each one, whether the syntax is
valid, the canonical form, the propositions it uses and whether it is a
tautology.

History is kept in the configured history file. Type .help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunREPL(cmd)
		},
	}
}

// RunREPL runs the interactive prompt on the terminal.
func RunREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	// The prompt always prints report blocks, whatever --output says.
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeText, output.ColorMode(cfg.Color))

	if dir := filepath.Dir(cfg.HistoryFile); cfg.HistoryFile != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			cmdCtx.Logger.Warn("history disabled", "path", cfg.HistoryFile, "error", err)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      newREPLCompleter(),
		InterruptPrompt:   "^C",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	return replLoop(cmd.Context(), rl, r, cmdCtx.Logger)
}

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
}

// replLoop analyzes each line until EOF, interrupt, .quit or ctx is done.
func replLoop(ctx context.Context, rl lineReader, r *output.Renderer, logger *slog.Logger) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.Println("CTRL-C")
			return nil
		}
		if errors.Is(err, io.EOF) {
			r.Println("CTRL-D")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(r, line); quit {
				return nil
			}
			continue
		}

		rep := analysis.Analyze(line)
		logger.Debug("analyzed", "input", line, "valid", rep.Valid, "tautology", rep.TautologyText())
		r.Report(rep)
		r.Println()
	}
}

// handleDotCommand runs a dot-command and reports whether the loop should end.
func handleDotCommand(r *output.Renderer, line string) bool {
	command, rest, _ := strings.Cut(line, " ")
	command = strings.ToLower(command)

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Out())

	case ".table":
		if strings.TrimSpace(rest) == "" {
			r.Errorf("Usage: .table <formula>")
			return false
		}
		if err := renderTruthTable(r, rest); err != nil {
			r.Errorf("Error: %v", err)
		}

	case ".clear":
		_, _ = fmt.Fprint(r.Out(), "\033[H\033[2J")

	default:
		r.Errorf("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	ops := parser.Operators()
	help := fmt.Sprintf(`
Commands:
  .help             Show this help message
  .table <formula>  Print the truth table of a formula
  .clear            Clear the screen
  .quit / .exit     Exit the prompt

Operators:
  and          %s
  or           %s
  implies      %s
  not          %s
  false        X  ⊥
  grouping     ( )

Tips:
  - AND and OR cannot be mixed without parentheses: (P & Q) || R
  - Implications take exactly two operands: (P -> Q) -> R
  - Whitespace is ignored everywhere, also inside names
`,
		strings.Join(ops["∧"], "  "),
		strings.Join(ops["∨"], "  "),
		strings.Join(ops["→"], "  "),
		strings.Join(ops["¬"], "  "))
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".table"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
