// Package config provides configuration management for the leaplogic CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Prompt       string      `koanf:"prompt"`
	HistoryFile  string      `koanf:"history_file"`
	Color        string      `koanf:"color"`
	OutputFormat string      `koanf:"output"`
	Verbose      bool        `koanf:"verbose"`
	Concurrency  int         `koanf:"concurrency"`
	Serve        ServeConfig `koanf:"serve"`
}

// ServeConfig holds configuration for the HTTP API.
type ServeConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxFormulas     int           `koanf:"max_formulas"`
}

// Default configuration values.
const (
	DefaultPrompt          = ">> "
	DefaultHistoryFileName = ".leaplogic_history"
	DefaultColor           = "auto"
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency     = 8
	DefaultServeAddr       = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxFormulas     = 256
)

// Default returns a Config populated with default values only.
func Default() *Config {
	return &Config{
		Prompt:       DefaultPrompt,
		HistoryFile:  DefaultHistoryFile(),
		Color:        DefaultColor,
		OutputFormat: DefaultOutput,
		Concurrency:  DefaultConcurrency,
		Serve: ServeConfig{
			Addr:            DefaultServeAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxFormulas:     DefaultMaxFormulas,
		},
	}
}
