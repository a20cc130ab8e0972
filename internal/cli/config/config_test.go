package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaplogic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, DefaultColor, cfg.Color)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, DefaultServeAddr, cfg.Serve.Addr)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Serve.ShutdownTimeout)
	assert.Equal(t, DefaultMaxFormulas, cfg.Serve.MaxFormulas)
	assert.Equal(t, DefaultHistoryFileName, filepath.Base(cfg.HistoryFile))
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `prompt: "logic> "
history_file: ~/custom_history
color: never
output: json
concurrency: 3
serve:
  addr: 127.0.0.1:9000
  shutdown_timeout: 2s
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "logic> ", cfg.Prompt)
	assert.Equal(t, filepath.Join(home, "custom_history"), cfg.HistoryFile)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.Equal(t, 2*time.Second, cfg.Serve.ShutdownTimeout)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaplogic.yml"), []byte("prompt: \"? \"\n"), 0600))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "? ", cfg.Prompt)
	assert.Equal(t, "leaplogic.yml", GetConfigFileUsed())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "unknown key", content: "promtp: x\n", errSubstr: "promtp"},
		{name: "bad output", content: "output: xml\n", errSubstr: "unknown output format"},
		{name: "bad color", content: "color: rainbow\n", errSubstr: "unknown color mode"},
		{name: "zero concurrency", content: "concurrency: 0\n", errSubstr: "concurrency must be at least 1"},
		{name: "bad duration", content: "serve:\n  shutdown_timeout: soon\n", errSubstr: "unable to decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "prompt: from_file\nserve:\n  addr: :1000\n")
	t.Setenv("LEAPLOGIC_PROMPT", "from_env")
	t.Setenv("LEAPLOGIC_SERVE_ADDR", ":2000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("prompt", "", "prompt")
	flags.String("addr", "", "listen address")
	flags.Bool("strict", false, "not a config key")
	require.NoError(t, flags.Set("prompt", "from_flag"))
	require.NoError(t, flags.Set("addr", ":3000"))
	require.NoError(t, flags.Set("strict", "true"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Prompt, "flag value should override config file and env var")
	assert.Equal(t, ":3000", cfg.Serve.Addr)
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "prompt: from_file\nserve:\n  addr: :1000\n")
	t.Setenv("LEAPLOGIC_PROMPT", "from_env")
	t.Setenv("LEAPLOGIC_SERVE_ADDR", ":2000")
	t.Setenv("LEAPLOGIC_SERVE_SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Prompt, "env var should override config file")
	assert.Equal(t, ":2000", cfg.Serve.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Serve.ShutdownTimeout)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("LEAPLOGIC_CONCURRENCY", "4")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("concurrency", 1, "workers")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency, "env var should be used when flag is not set")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "history_file", envKey("LEAPLOGIC_HISTORY_FILE"))
	assert.Equal(t, "serve.addr", envKey("LEAPLOGIC_SERVE_ADDR"))
	assert.Equal(t, "serve.shutdown_timeout", envKey("LEAPLOGIC_SERVE_SHUTDOWN_TIMEOUT"))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger must not be nil")

	logger := NewLogger(os.Stderr, true)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
