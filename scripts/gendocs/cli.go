package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplogic/internal/analysis"
	"github.com/leapstack-labs/leaplogic/internal/cli"
	"github.com/leapstack-labs/leaplogic/internal/cli/config"
	"github.com/leapstack-labs/leaplogic/internal/cli/output"
	"github.com/leapstack-labs/leaplogic/internal/server"
	"github.com/leapstack-labs/leaplogic/pkg/formula"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sampleFormulas feed the example output on the command pages: a
// tautology, a formula that is not one, and a syntax error.
var sampleFormulas = []string{"(P & Q) -> P", "P || Q", "P & Q || R"}

// commandSample renders the example output section of one command page.
type commandSample func(w *MarkdownWriter) error

var commandSamples = map[string]commandSample{
	"repl":  replSample,
	"check": checkSample,
	"table": tableSample,
	"serve": serveSample,
}

// generateCLIDocs writes index.md and one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	if err := writePage(outDir, "index.md", cliIndex(rootCmd)); err != nil {
		return err
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" {
			continue
		}
		w, err := commandPage(cmd)
		if err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		if err := writePage(outDir, cmd.Name()+".md", w); err != nil {
			return err
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Printf("  Generated %s", name)
	return nil
}

// cliIndex lists the commands, global flags, environment variables and exit
// codes.
func cliIndex(rootCmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for leaplogic")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("leaplogic checks propositional-logic formulas from an interactive prompt, " +
		"from files, or over HTTP. Running it without a command starts the prompt.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leaplogic/cmd/leaplogic@latest")

	var rows [][]string
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" {
			continue
		}
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	var envRows [][]string
	for _, f := range configFields() {
		envRows = append(envRows, []string{InlineCode(envName(f.Key)), InlineCode(f.Key), InlineCode(f.Default)})
	}
	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set through the environment. Flags win over the environment, which wins over the config file.")
	w.Table([]string{"Variable", "Key", "Default"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success. Invalid formulas are reported, not fatal, unless `check --strict` is set."},
		{InlineCode("1"), "Usage or configuration error, unreadable input, or a failed `check --strict`."},
	})
	return w
}

// commandPage documents one command and, where it has one, its output.
func commandPage(cmd *cobra.Command) (*MarkdownWriter, error) {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	w.Paragraph(cmd.Long)

	w.Header(2, "Usage")
	w.CodeBlock("bash", strings.TrimSuffix(cmd.UseLine(), " [flags]"))

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	if sample, ok := commandSamples[cmd.Name()]; ok {
		w.Header(2, "Sample Output")
		if err := sample(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// textRenderer renders without colors into buf, as on a plain terminal.
func textRenderer(buf *bytes.Buffer, mode output.Mode) *output.Renderer {
	return output.NewRendererWithTTY(buf, buf, true, mode, output.ColorNever)
}

func replSample(w *MarkdownWriter) error {
	var buf bytes.Buffer
	r := textRenderer(&buf, output.ModeText)
	for _, f := range sampleFormulas {
		_, _ = fmt.Fprintf(&buf, "%s%s\n", config.DefaultPrompt, f)
		r.Report(analysis.Analyze(f))
		r.Println()
	}
	w.CodeBlock("text", buf.String())

	ops := parser.Operators()
	w.Paragraph("Operators accepted at the prompt:")
	w.BulletList([]string{
		"and: " + spellings(ops[formula.AndGlyph]),
		"or: " + spellings(ops[formula.OrGlyph]),
		"implies: " + spellings(ops[formula.ImpliesGlyph]),
		"not: " + spellings(ops[formula.NotGlyph]),
	})
	return nil
}

func checkSample(w *MarkdownWriter) error {
	reports := make([]*analysis.Report, 0, len(sampleFormulas))
	for _, f := range sampleFormulas {
		reports = append(reports, analysis.Analyze(f))
	}

	var buf bytes.Buffer
	if err := textRenderer(&buf, output.ModeMarkdown).Reports(reports); err != nil {
		return err
	}
	w.Paragraph(fmt.Sprintf("`leaplogic check %s` piped to a file:", quoteArgs(sampleFormulas)))
	w.Paragraph(buf.String())
	return nil
}

func tableSample(w *MarkdownWriter) error {
	node, err := parser.Parse(sampleFormulas[0])
	if err != nil {
		return err
	}
	props := node.Propositions()
	rows, err := node.TruthTable(props)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := textRenderer(&buf, output.ModeText).TruthTable(node, props, rows); err != nil {
		return err
	}
	w.Paragraph(fmt.Sprintf("`leaplogic table %s`:", quoteArgs(sampleFormulas[:1])))
	w.CodeBlock("text", buf.String())
	return nil
}

func serveSample(w *MarkdownWriter) error {
	lines := []string{sampleFormulas[0], sampleFormulas[2]}
	reports := []*analysis.Report{analysis.Analyze(lines[0]), analysis.Analyze(lines[1])}

	var req, resp bytes.Buffer
	if err := encodeJSON(&req, server.AnalyzeRequest{Formulas: lines}, ""); err != nil {
		return err
	}
	if err := encodeJSON(&resp, server.AnalyzeResponse{Reports: reports, Summary: analysis.Summarize(reports)}, "  "); err != nil {
		return err
	}
	w.Paragraph(fmt.Sprintf("`POST /analyze` with `%s`:", strings.TrimSpace(req.String())))
	w.CodeBlock("json", resp.String())
	return nil
}

// encodeJSON writes v without escaping the & and > of formulas.
func encodeJSON(buf *bytes.Buffer, v any, indent string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample strips the two-space indent used in cobra Example strings.
func cleanExample(example string) string {
	lines := strings.Split(strings.TrimRight(example, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "  ")
	}
	return strings.Join(lines, "\n")
}

// envName returns the environment variable for a config key.
func envName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func spellings(ops []string) string {
	cells := make([]string, len(ops))
	for i, op := range ops {
		cells[i] = InlineCode(op)
	}
	return strings.Join(cells, " ")
}

func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + a + "'"
	}
	return strings.Join(quoted, " ")
}
