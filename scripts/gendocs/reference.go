package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/leaplogic/internal/cli/config"
	"github.com/leapstack-labs/leaplogic/pkg/formula"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
)

// ConfigField describes one configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// configFields lists the keys read by config.LoadConfig, with the
// defaults of config.Default.
func configFields() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Key: "prompt", Type: "string", Default: def.Prompt, Description: "Prompt shown by the interactive shell"},
		{Key: "history_file", Type: "string", Default: "~/" + config.DefaultHistoryFileName, Description: "Interactive shell history; a leading ~/ is expanded"},
		{Key: "color", Type: "string", Default: def.Color, Description: "auto, always or never"},
		{Key: "output", Type: "string", Default: def.OutputFormat, Description: "auto, text, markdown, json or yaml"},
		{Key: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr"},
		{Key: "concurrency", Type: "int", Default: strconv.Itoa(def.Concurrency), Description: "Formulas analyzed in parallel by check and serve"},
		{Key: "serve.addr", Type: "string", Default: def.Serve.Addr, Description: "Listen address of serve"},
		{Key: "serve.shutdown_timeout", Type: "duration", Default: def.Serve.ShutdownTimeout.String(), Description: "Grace period for in-flight requests on shutdown"},
		{Key: "serve.max_formulas", Type: "int", Default: strconv.Itoa(def.Serve.MaxFormulas), Description: "Largest batch accepted by POST /analyze"},
	}
}

// generateReferenceDocs writes configuration.md and operators.md.
func generateReferenceDocs(outDir string) error {
	log.Printf("Generating reference docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	if err := generateOperatorsDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate operators.md: %w", err)
	}
	log.Printf("  Generated operators.md")

	return nil
}

func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "leaplogic configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leaplogic reads `leaplogic.yaml` (or `leaplogic.yml`) from the working directory, or the file given with `--config`. " +
		"Values are layered, lowest to highest: defaults, config file, environment, command-line flags. Unknown keys are rejected.")

	var rows [][]string
	for _, f := range configFields() {
		rows = append(rows, []string{InlineCode(f.Key), f.Type, InlineCode(f.Default), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `prompt: "logic> "
color: never
output: json
concurrency: 4
serve:
  addr: 127.0.0.1:9000
  shutdown_timeout: 10s`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func generateOperatorsDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Formula syntax", "Operators accepted by the leaplogic parser")
	w.GeneratedMarker()

	w.Header(1, "Formula syntax")
	w.Paragraph("Whitespace is ignored everywhere, including inside names. " +
		"Variables are runs of ASCII letters; the name `X` is reserved for the contradiction.")

	ops := parser.Operators()
	w.Table([]string{"Connective", "Canonical", "Accepted"}, [][]string{
		{"and", formula.AndGlyph, spellings(ops[formula.AndGlyph])},
		{"or", formula.OrGlyph, spellings(ops[formula.OrGlyph])},
		{"implies", formula.ImpliesGlyph, spellings(ops[formula.ImpliesGlyph])},
		{"not", formula.NotGlyph, spellings(ops[formula.NotGlyph])},
		{"contradiction", formula.ContradictionName, InlineCode(formula.ContradictionName) + " " + InlineCode(formula.ContradictionGlyph)},
	})

	w.Header(2, "Grouping")
	w.BulletList([]string{
		"AND and OR cannot be mixed at one level: write `(P & Q) || R`.",
		"One conjunction or disjunction uses a single spelling of its operator.",
		"An implication has exactly two operands: write `(P -> Q) -> R`.",
		fmt.Sprintf("Tautology checks are refused beyond %d propositions.", formula.MaxPropositions),
	})

	return os.WriteFile(filepath.Join(outDir, "operators.md"), w.Bytes(), 0600)
}
