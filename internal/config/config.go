package config

import (
	"strings"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Storage    config.StorageConfig    `koanf:"storage"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Cache      config.CacheConfig      `koanf:"cache"`
	Auth       config.AuthConfig       `koanf:"auth"`
}

// String prints every section. Secrets are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Storage.String())
	if c.Storage.Driver == config.StorageDriverPostgres {
		b.WriteString(c.Database.String())
	}
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Resilience.String())
	b.WriteString(c.Cache.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

type validator interface {
	Validate() error
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	sections := []validator{
		&c.HTTPServer, &c.Storage, &c.Log, &c.PProf, &c.GRPC, &c.Shutdown,
		&c.NATS, &c.Telemetry, &c.Resilience, &c.Cache, &c.Auth,
	}
	if c.Storage.Driver == config.StorageDriverPostgres {
		sections = append(sections, &c.Database)
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
