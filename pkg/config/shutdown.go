package config

import (
	"fmt"
	"strings"
	"time"
)

// MaxShutdownTimeout caps the drain period. Every server and the telemetry flush get the
// full timeout each, so the process may take a multiple of it to exit.
const MaxShutdownTimeout = 2 * time.Minute

// ShutdownConfig bounds how long in-flight requests may drain after SIGTERM.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the ShutdownConfig.
func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout is not configured")
	}
	if c.Timeout > MaxShutdownTimeout {
		return fmt.Errorf("shutdown timeout %s exceeds %s", c.Timeout, MaxShutdownTimeout)
	}
	return nil
}
