package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	for _, name := range []string{"index.md", "check.md", "table.md", "serve.md", "repl.md", "version.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "`LEAPLOGIC_SERVE_ADDR`")
	assert.Contains(t, string(index), "[`check`](/cli/check)")

	check, err := os.ReadFile(filepath.Join(dir, "check.md"))
	require.NoError(t, err)
	assert.Contains(t, string(check), "leaplogic check [formula...]")
	assert.Contains(t, string(check), "`--strict`")
	assert.NotContains(t, string(check), "[flags]")
}

func TestCommandPages_SampleOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	read := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(data)
	}

	tests := []struct {
		page string
		want []string
	}{
		{"repl.md", []string{
			"## Sample Output",
			">> (P & Q) -> P",
			"Tautology    : yes",
			"Syntax       : INVALID",
			"and: `/\\` `∧` `&`",
			"implies: `->` `→`",
			"not: `~` `¬` `!`",
		}},
		{"check.md", []string{
			"`leaplogic check '(P & Q) -> P' 'P || Q' 'P & Q || R'`",
			"| Input | Syntax | Formatted | Propositions | Tautology |",
			"INVALID",
		}},
		{"table.md", []string{
			"`leaplogic table '(P & Q) -> P'`",
			"((P ∧ Q) → P)",
			"│",
		}},
		{"serve.md", []string{
			"`POST /analyze` with `{\"formulas\":[\"(P & Q) -> P\",\"P & Q || R\"]}`",
			"\"tautology\": \"yes\"",
			"\"invalid\": 1",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			page := read(tt.page)
			for _, want := range tt.want {
				assert.Contains(t, page, want)
			}
		})
	}

	assert.NotContains(t, read("version.md"), "## Sample Output")
}

func TestGenerateReferenceDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateReferenceDocs(dir))

	cfg, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "`serve.shutdown_timeout`")
	assert.Contains(t, string(cfg), "`5s`")

	ops, err := os.ReadFile(filepath.Join(dir, "operators.md"))
	require.NoError(t, err)
	assert.Contains(t, string(ops), "`->` `→`")
	assert.Contains(t, string(ops), "15 propositions")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "LEAPLOGIC_HISTORY_FILE", envName("history_file"))
	assert.Equal(t, "LEAPLOGIC_SERVE_MAX_FORMULAS", envName("serve.max_formulas"))
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "leaplogic check 'P'\nleaplogic table 'P'",
		cleanExample("  leaplogic check 'P'\n  leaplogic table 'P'\n"))
}
