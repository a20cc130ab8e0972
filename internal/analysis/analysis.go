// Package analysis runs the parse → render → propositions → tautology
// pipeline for one line of input and shapes the result for display.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leaplogic/pkg/formula"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// Placeholder is shown for any field that has no value.
const Placeholder = "---"

// Report is the outcome of analyzing one formula.
type Report struct {
	Input        string          `json:"input" yaml:"input"`
	Valid        bool            `json:"valid" yaml:"valid"`
	Error        string          `json:"error,omitempty" yaml:"error,omitempty"`
	Formatted    string          `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Propositions []string        `json:"propositions" yaml:"propositions"`
	Verdict      formula.Verdict `json:"-" yaml:"-"`

	// Tautology mirrors Verdict for encoders; empty when the input is invalid.
	Tautology string `json:"tautology,omitempty" yaml:"tautology,omitempty"`

	node *formula.Node
}

// Analyze parses line and, when it is valid, computes the rendered form,
// the sorted propositions and the tautology verdict.
func Analyze(line string) *Report {
	r := &Report{Input: line, Propositions: []string{}}

	node, err := parser.Parse(line)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Valid = true
	r.node = node
	r.Formatted = node.String()
	r.Propositions = node.Propositions()

	// Propositions covers every variable, so evaluation cannot fail.
	verdict, err := node.IsTautology(r.Propositions)
	if err != nil {
		panic(fmt.Sprintf("analysis: tautology check of %q: %v", r.Formatted, err))
	}
	r.Verdict = verdict
	r.Tautology = verdict.String()
	return r
}

// Node returns the parsed tree, or nil for invalid input.
func (r *Report) Node() *formula.Node {
	return r.node
}

// FormattedText returns the rendered formula or the placeholder.
func (r *Report) FormattedText() string {
	if !r.Valid {
		return Placeholder
	}
	return r.Formatted
}

// PropositionsText returns the comma-joined propositions or the placeholder.
func (r *Report) PropositionsText() string {
	if !r.Valid || len(r.Propositions) == 0 {
		return Placeholder
	}
	return strings.Join(r.Propositions, ", ")
}

// TautologyText returns the verdict or the placeholder.
func (r *Report) TautologyText() string {
	if !r.Valid {
		return Placeholder
	}
	return r.Verdict.String()
}

// IsTautology reports whether the formula is valid and a tautology.
func (r *Report) IsTautology() bool {
	return r.Valid && r.Verdict == formula.Yes
}

// DefaultConcurrency bounds AnalyzeAll when the caller passes limit < 1.
const DefaultConcurrency = 8

// AnalyzeAll analyzes lines concurrently, at most limit at a time, and
// returns reports in input order.
func AnalyzeAll(ctx context.Context, logger *slog.Logger, lines []string, limit int) ([]*Report, error) {
	if limit < 1 {
		limit = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reports := make([]*Report, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := Analyze(line)
			if r.Valid && r.Verdict == formula.Undetermined {
				logger.Debug("tautology check refused",
					"formula", r.Formatted,
					"propositions", len(r.Propositions),
					"max", formula.MaxPropositions)
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("analysis interrupted: %w", err)
		}
		return nil, err
	}

	logger.Debug("analyzed formulas", "count", len(lines), "concurrency", limit)
	return reports, nil
}

// Summary counts reports by outcome.
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	Invalid      int `json:"invalid" yaml:"invalid"`
	Tautologies  int `json:"tautologies" yaml:"tautologies"`
	NotTautology int `json:"not_tautology" yaml:"not_tautology"`
	Undetermined int `json:"undetermined" yaml:"undetermined"`
}

// Summarize counts the outcomes in reports.
func Summarize(reports []*Report) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		switch {
		case !r.Valid:
			s.Invalid++
		case r.Verdict == formula.Yes:
			s.Tautologies++
		case r.Verdict == formula.No:
			s.NotTautology++
		default:
			s.Undetermined++
		}
	}
	return s
}
