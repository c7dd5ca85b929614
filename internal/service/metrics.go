package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "catalog-service"

const (
	entityProduct = "product"
	entityOrder   = "order"
)

// cacheMetrics counts index hits and misses per entity and cold-start reloads.
type cacheMetrics struct {
	hits    metric.Int64Counter
	misses  metric.Int64Counter
	reloads metric.Int64Counter
}

func newCacheMetrics() *cacheMetrics {
	meter := otel.Meter(meterName)
	return &cacheMetrics{
		hits:    mustCounter(meter, "cache_hits", "Lookups answered from the in-memory index"),
		misses:  mustCounter(meter, "cache_misses", "Lookups that fell through to the durable store"),
		reloads: mustCounter(meter, "cache_reloads", "Full order reloads triggered by the cold-start rule"),
	}
}

func (m *cacheMetrics) hit(ctx context.Context, entity string) {
	m.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}

func (m *cacheMetrics) miss(ctx context.Context, entity string) {
	m.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return c
}
