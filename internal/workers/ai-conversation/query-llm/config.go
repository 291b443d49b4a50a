package queryllm

import (
	"fmt"
	"time"
)

type Config struct {
	// Timeout bounds one Zeebe job.
	Timeout time.Duration
	// DefaultProvider answers jobs that name no provider.
	DefaultProvider string
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:         60 * time.Second,
		DefaultProvider: "cohere",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DefaultProvider == "" {
		return fmt.Errorf("default provider is required")
	}
	return nil
}
