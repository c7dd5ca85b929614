package config

import (
	"fmt"
	"strings"
)

// AuthConfig holds the shared secret expected in the X-API-Key header.
type AuthConfig struct {
	APIKey string `koanf:"apikey"`
}

// String returns a string representation of the auth configuration. The key itself is never printed.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	b.WriteString(fmt.Sprintf("  apikey set: %t\n", c.APIKey != ""))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is not configured")
	}
	return nil
}
