package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplogic/internal/analysis"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestRenderer(isTTY bool, mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewRendererWithTTY(&out, &errOut, isTTY, mode, ColorNever), &out, &errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{mode: ModeAuto, isTTY: true, want: ModeText},
		{mode: ModeAuto, isTTY: false, want: ModeMarkdown},
		{mode: "", isTTY: false, want: ModeMarkdown},
		{mode: ModeJSON, isTTY: true, want: ModeJSON},
		{mode: ModeText, isTTY: false, want: ModeText},
	}

	for _, tt := range tests {
		r, _, _ := newTestRenderer(tt.isTTY, tt.mode)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%q tty=%v", tt.mode, tt.isTTY)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("table")
	assert.ErrorContains(t, err, "unknown output format")

	got, err := ParseColorMode("never")
	require.NoError(t, err)
	assert.Equal(t, ColorNever, got)

	_, err = ParseColorMode("sometimes")
	assert.ErrorContains(t, err, "unknown color mode")
}

func TestReport_TextBlock(t *testing.T) {
	r, out, _ := newTestRenderer(true, ModeText)
	r.Report(analysis.Analyze("P∧Q∨R"))

	assert.Equal(t, "Syntax       : INVALID\n"+
		"Formatted    : ---\n"+
		"Propositions : ---\n"+
		"Tautology    : ---\n", out.String())
}

func TestReports_Modes(t *testing.T) {
	reports := []*analysis.Report{
		analysis.Analyze("P -> P"),
		analysis.Analyze("P || Q"),
	}

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(true, ModeAuto)
		require.NoError(t, r.Reports(reports))
		assert.Contains(t, out.String(), "Input        : P -> P\n")
		assert.Contains(t, out.String(), "Tautology    : no\n")
	})

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(false, ModeAuto)
		require.NoError(t, r.Reports(reports))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "Input")
		assert.Contains(t, lines[2], "| (P → P) | P | yes |")
	})

	t.Run("json", func(t *testing.T) {
		r, out, _ := newTestRenderer(false, ModeJSON)
		require.NoError(t, r.Reports(reports))

		var doc reportDocument
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		require.Len(t, doc.Reports, 2)
		assert.Equal(t, "(P ∨ Q)", doc.Reports[1].Formatted)
		assert.Equal(t, analysis.Summary{Total: 2, Tautologies: 1, NotTautology: 1}, doc.Summary)
	})

	t.Run("yaml", func(t *testing.T) {
		r, out, _ := newTestRenderer(false, ModeYAML)
		require.NoError(t, r.Reports(reports))
		assert.Contains(t, out.String(), "tautology: \"yes\"")

		var doc reportDocument
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, []string{"P", "Q"}, doc.Reports[1].Propositions)
	})
}

func TestTruthTable_Text(t *testing.T) {
	node, err := parser.Parse("a || ~a")
	require.NoError(t, err)
	props := node.Propositions()
	rows, err := node.TruthTable(props)
	require.NoError(t, err)

	r, out, _ := newTestRenderer(true, ModeText)
	require.NoError(t, r.TruthTable(node, props, rows))

	assert.Contains(t, out.String(), "│ a │ (a ∨ ¬a) │")
	assert.Contains(t, out.String(), "│ F │ T        │")
}

func TestErrorf(t *testing.T) {
	r, out, errOut := newTestRenderer(true, ModeText)
	r.Errorf("Error: %s", "boom")
	assert.Empty(t, out.String())
	assert.Equal(t, "Error: boom\n", errOut.String())
}
