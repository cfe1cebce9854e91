package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the search counters.
const MeterName = "spacewars/searcher"

type otelCollector struct {
	Collector
	episodes     metric.Int64Counter
	fullPlayouts metric.Int64Counter
	duration     metric.Float64Histogram
	searches     metric.Int64Counter
}

// NewOTelCollector counts episodes and full playouts on the given meter while
// keeping the per-search totals of an atomic collector.
func NewOTelCollector(meter metric.Meter) (Collector, error) {
	episodes, err := meter.Int64Counter("searcher.episodes",
		metric.WithDescription("Rollout episodes run by the searcher"))
	if err != nil {
		return nil, fmt.Errorf("failed to create episodes counter: %w", err)
	}
	fullPlayouts, err := meter.Int64Counter("searcher.full_playouts",
		metric.WithDescription("Rollouts that reached game over before the cutoff"))
	if err != nil {
		return nil, fmt.Errorf("failed to create full playouts counter: %w", err)
	}
	searches, err := meter.Int64Counter("searcher.searches",
		metric.WithDescription("Completed move searches"))
	if err != nil {
		return nil, fmt.Errorf("failed to create searches counter: %w", err)
	}
	duration, err := meter.Float64Histogram("searcher.duration",
		metric.WithDescription("Wall time of one move search"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &otelCollector{
		Collector:    NewCollector(),
		episodes:     episodes,
		fullPlayouts: fullPlayouts,
		duration:     duration,
		searches:     searches,
	}, nil
}

func (m *otelCollector) AddFullPlayout() {
	m.Collector.AddFullPlayout()
	m.fullPlayouts.Add(context.Background(), 1)
}

func (m *otelCollector) AddEpisode() {
	m.Collector.AddEpisode()
	m.episodes.Add(context.Background(), 1)
}

func (m *otelCollector) Complete() SearchMetric {
	sm := m.Collector.Complete()
	attrs := metric.WithAttributes(attribute.Int("goroutines", sm.Goroutines))
	m.searches.Add(context.Background(), 1, attrs)
	m.duration.Record(context.Background(), float64(sm.Duration.Microseconds())/1000, attrs)
	return sm
}
