package config

import (
	"fmt"

	"github.com/leapstack-labs/leaplogic/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if _, err := output.ParseColorMode(c.Color); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr is required")
	}
	if c.Serve.ShutdownTimeout <= 0 {
		return fmt.Errorf("serve.shutdown_timeout must be positive, got %s", c.Serve.ShutdownTimeout)
	}
	if c.Serve.MaxFormulas < 1 {
		return fmt.Errorf("serve.max_formulas must be at least 1, got %d", c.Serve.MaxFormulas)
	}
	return nil
}
