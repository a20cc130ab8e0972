package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/leaplogic/internal/analysis"
	"github.com/leapstack-labs/leaplogic/pkg/formula"
)

// Report writes the four-line block for one analysis:
//
//	Syntax       : OK
//	Formatted    : (P → P)
//	Propositions : P
//	Tautology    : yes
func (r *Renderer) Report(rep *analysis.Report) {
	s := r.styles
	syntax := s.OK.Render("OK")
	if !rep.Valid {
		syntax = s.Error.Render("INVALID")
	}

	r.line("Syntax", syntax)
	r.line("Formatted", rep.FormattedText())
	r.line("Propositions", rep.PropositionsText())
	r.line("Tautology", r.verdict(rep))
}

func (r *Renderer) line(label, value string) {
	_, _ = fmt.Fprintf(r.out, "%s : %s\n", r.styles.Label.Render(fmt.Sprintf("%-12s", label)), value)
}

func (r *Renderer) verdict(rep *analysis.Report) string {
	if !rep.Valid {
		return rep.TautologyText()
	}
	switch rep.Verdict {
	case formula.Yes:
		return r.styles.Yes.Render(rep.TautologyText())
	case formula.No:
		return r.styles.No.Render(rep.TautologyText())
	default:
		return r.styles.Warning.Render(rep.TautologyText())
	}
}

// reportDocument is the machine-readable shape of a batch.
type reportDocument struct {
	Reports []*analysis.Report `json:"reports" yaml:"reports"`
	Summary analysis.Summary   `json:"summary" yaml:"summary"`
}

// Reports writes a batch of analyses in the effective mode.
func (r *Renderer) Reports(reports []*analysis.Report) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(reportDocument{Reports: reports, Summary: analysis.Summarize(reports)})
	case ModeYAML:
		return r.YAML(reportDocument{Reports: reports, Summary: analysis.Summarize(reports)})
	case ModeMarkdown:
		return renderReportTable(r.out, reports)
	default:
		for i, rep := range reports {
			if i > 0 {
				r.Println()
			}
			if len(reports) > 1 {
				r.line("Input", r.styles.Muted.Render(rep.Input))
			}
			r.Report(rep)
		}
		return nil
	}
}

func renderReportTable(w io.Writer, reports []*analysis.Report) error {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Input", "Syntax", "Formatted", "Propositions", "Tautology"})
	for _, rep := range reports {
		syntax := "OK"
		if !rep.Valid {
			syntax = "INVALID"
		}
		t.AppendRow(table.Row{rep.Input, syntax, rep.FormattedText(), rep.PropositionsText(), rep.TautologyText()})
	}
	_, err := fmt.Fprintln(w, t.RenderMarkdown())
	return err
}

// truthTableDocument is the machine-readable shape of a truth table.
type truthTableDocument struct {
	Formula      string          `json:"formula" yaml:"formula"`
	Propositions []string        `json:"propositions" yaml:"propositions"`
	Rows         []truthTableRow `json:"rows" yaml:"rows"`
}

type truthTableRow struct {
	Values []bool `json:"values" yaml:"values,flow"`
	Result bool   `json:"result" yaml:"result"`
}

// TruthTable writes the rows of a truth table for node.
func (r *Renderer) TruthTable(node *formula.Node, props []string, rows []formula.Row) error {
	switch r.EffectiveMode() {
	case ModeJSON, ModeYAML:
		doc := truthTableDocument{Formula: node.String(), Propositions: props}
		for _, row := range rows {
			doc.Rows = append(doc.Rows, truthTableRow{Values: row.Values, Result: row.Result})
		}
		if r.EffectiveMode() == ModeJSON {
			return r.JSON(doc)
		}
		return r.YAML(doc)
	}

	t := table.NewWriter()
	header := make(table.Row, 0, len(props)+1)
	for _, p := range props {
		header = append(header, p)
	}
	header = append(header, node.String())
	t.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, 0, len(row.Values)+1)
		for _, v := range row.Values {
			cells = append(cells, truthValue(v))
		}
		cells = append(cells, truthValue(row.Result))
		t.AppendRow(cells)
	}

	if r.EffectiveMode() != ModeMarkdown {
		t.SetStyle(table.StyleLight)
	}
	// Proposition names are case-sensitive.
	t.Style().Format.Header = text.FormatDefault

	if r.EffectiveMode() == ModeMarkdown {
		_, err := fmt.Fprintln(r.out, t.RenderMarkdown())
		return err
	}
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

func truthValue(v bool) string {
	if v {
		return "T"
	}
	return "F"
}
