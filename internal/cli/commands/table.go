package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplogic/internal/cli/output"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
	"github.com/spf13/cobra"
)

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table <formula>",
		Short: "Print the truth table of a formula",
		Long: `Print one row per assignment of the formula's propositions, with the
value of the formula in the last column.

Columns are the propositions in sorted order. Rows follow the same
enumeration as the tautology check: the first proposition changes fastest.
Formulas with more than 15 propositions are refused.`,
		Example: `  leaplogic table 'P -> Q'
  leaplogic table '(P & Q) -> P' -o markdown`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			return renderTruthTable(cmdCtx.Renderer, strings.Join(args, " "))
		},
	}
}

// renderTruthTable parses input and writes its truth table.
func renderTruthTable(r *output.Renderer, input string) error {
	node, err := parser.Parse(input)
	if err != nil {
		return err
	}
	props := node.Propositions()
	rows, err := node.TruthTable(props)
	if err != nil {
		return fmt.Errorf("cannot build truth table for %s: %w", node, err)
	}
	return r.TruthTable(node, props, rows)
}
