package config

import (
	"fmt"
	"strings"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// StorageConfig selects the durable store backing the cache.
type StorageConfig struct {
	Driver string `koanf:"driver"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Driver)
	}
}
