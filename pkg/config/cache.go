package config

import (
	"fmt"
	"strings"
)

type CacheConfig struct {
	WarmOnStart bool `koanf:"warmonstart"`
}

// String returns a string representation of the cache configuration.
func (c *CacheConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Cache ---\n")
	b.WriteString(fmt.Sprintf("  warmonstart: %t\n", c.WarmOnStart))
	return b.String()
}

func (c *CacheConfig) Validate() error {
	return nil
}
