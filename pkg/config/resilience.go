package config

import (
	"fmt"
	"strings"
	"time"
)

// MaxRetryAttempts bounds the startup ping loop, whose backoff doubles after every attempt.
const MaxRetryAttempts = 20

type ResilienceConfig struct {
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

// RetryConfig bounds the attempts made while waiting for the database at startup.
type RetryConfig struct {
	MaxAttempts    uint          `koanf:"maxattempts"`
	InitialBackoff time.Duration `koanf:"initialbackoff"`
}

// CircuitBreakerConfig configures the breaker wrapped around the durable store.
// ErrorRatePercent 0 disables the error-rate rule, leaving only consecutive failures.
type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

// String returns a string representation of the ResilienceConfig.
func (c *ResilienceConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Retry ---\n")
	b.WriteString(fmt.Sprintf("  maxattempts: %d\n", c.Retry.MaxAttempts))
	b.WriteString(fmt.Sprintf("  initialbackoff: %v\n", c.Retry.InitialBackoff))
	b.WriteString("\n--- Circuit Breaker ---\n")
	b.WriteString(fmt.Sprintf("  consecutivefailures: %d\n", c.CircuitBreaker.ConsecutiveFailures))
	if c.CircuitBreaker.ErrorRatePercent == 0 {
		b.WriteString("  errorratepercent: disabled\n")
	} else {
		b.WriteString(fmt.Sprintf("  errorratepercent: %d\n", c.CircuitBreaker.ErrorRatePercent))
	}
	b.WriteString(fmt.Sprintf("  opentimeout: %v\n", c.CircuitBreaker.OpenTimeout))
	return b.String()
}

func (c *ResilienceConfig) Validate() error {
	if c.Retry.MaxAttempts == 0 || c.Retry.MaxAttempts > MaxRetryAttempts {
		return fmt.Errorf("resilience.retry.maxattempts must be between 1 and %d", MaxRetryAttempts)
	}
	if c.Retry.InitialBackoff <= 0 {
		return fmt.Errorf("resilience.retry.initialbackoff must be greater than 0")
	}
	if c.CircuitBreaker.ConsecutiveFailures == 0 {
		return fmt.Errorf("resilience.circuitbreaker.consecutivefailures must be greater than 0")
	}
	if c.CircuitBreaker.ErrorRatePercent < 0 || c.CircuitBreaker.ErrorRatePercent > 100 {
		return fmt.Errorf("resilience.circuitbreaker.errorratepercent must be between 0 and 100")
	}
	if c.CircuitBreaker.OpenTimeout <= 0 {
		return fmt.Errorf("resilience.circuitbreaker.opentimeout must be greater than 0")
	}
	return nil
}
