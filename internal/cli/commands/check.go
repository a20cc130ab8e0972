package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leaplogic/internal/analysis"
	"github.com/leapstack-labs/leaplogic/internal/cli/config"
	"github.com/spf13/cobra"
)

// ErrCheckFailed is returned by check --strict when a formula is not a
// proven tautology.
var ErrCheckFailed = errors.New("check failed")

// maxFormulaLine bounds one line of a formula file.
const maxFormulaLine = 1 << 20

// watchDebounce is how long check --watch waits for writes to settle.
const watchDebounce = 100 * time.Millisecond

// CheckOptions holds options for the check command.
type CheckOptions struct {
	File   string
	Strict bool
	Watch  bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [formula...]",
		Short: "Analyze formulas from arguments or a file",
		Long: `Analyze each formula and report its syntax, canonical form, propositions
and tautology verdict.

Formulas come from the arguments, or one per line from --file ("-" reads
stdin). Blank lines and lines starting with # are skipped. Results keep the
input order.

Output format:
  --output auto      Text on a terminal, markdown when piped (default)
  --output text      Report blocks
  --output markdown  A table
  --output json      JSON document with reports and a summary
  --output yaml      YAML document with reports and a summary`,
		Example: `  leaplogic check 'P -> P' '(P & Q) -> P'
  leaplogic check -f formulas.txt --strict
  cat formulas.txt | leaplogic check -f - -o json
  leaplogic check -f formulas.txt --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `Read formulas from a file, one per line ("-" for stdin)`)
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency, "Number of formulas analyzed in parallel")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail unless every formula is a tautology")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run whenever --file changes")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	switch {
	case len(args) > 0 && opts.File != "":
		return errors.New("pass formulas as arguments or with --file, not both")
	case len(args) == 0 && opts.File == "":
		return errors.New("no formulas given: pass them as arguments or with --file")
	case opts.Watch && (opts.File == "" || opts.File == "-"):
		return errors.New("--watch needs --file with a path")
	}

	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run := func() error {
		lines := args
		if opts.File != "" {
			var err error
			if lines, err = readFormulas(cmd.InOrStdin(), opts.File); err != nil {
				return err
			}
		}
		return checkFormulas(ctx, cmdCtx, lines, opts.Strict)
	}

	if !opts.Watch {
		return run()
	}

	var mu sync.Mutex
	rerun := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := run(); err != nil {
			cmdCtx.Renderer.Errorf("Error: %v", err)
		}
	}
	rerun()
	return watchFile(ctx, cmdCtx.Logger, opts.File, rerun)
}

// checkFormulas analyzes lines and renders the batch.
func checkFormulas(ctx context.Context, cmdCtx *CommandContext, lines []string, strict bool) error {
	reports, err := analysis.AnalyzeAll(ctx, cmdCtx.Logger, lines, cmdCtx.Cfg.Concurrency)
	if err != nil {
		return err
	}
	if err := cmdCtx.Renderer.Reports(reports); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	if !strict {
		return nil
	}
	s := analysis.Summarize(reports)
	if failed := s.Total - s.Tautologies; failed > 0 {
		return fmt.Errorf("%w: %d of %d formulas are not tautologies (%d invalid, %d undetermined)",
			ErrCheckFailed, failed, s.Total, s.Invalid, s.Undetermined)
	}
	return nil
}

// readFormulas reads one formula per line from path, or from stdin when
// path is "-". Blank lines and # comments are dropped.
func readFormulas(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open formula file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFormulaLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read formulas: %w", err)
	}
	return lines, nil
}

// watchFile calls onChange after writes to path settle, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func watchFile(ctx context.Context, logger *slog.Logger, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Debug("watching for changes", "file", target)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				logger.Debug("file changed, re-checking", "file", event.Name)
				onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
