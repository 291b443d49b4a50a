package checkbusiness

import (
	"fmt"
	"time"
)

type Config struct {
	// Timeout bounds one Zeebe job; HTTP requests use the request context.
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
