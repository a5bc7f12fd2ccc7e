// Package telemetry exposes FlowRisk metrics through an OpenTelemetry meter provider
// backed by a Prometheus exporter.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

const meterName = "github.com/vsm34/FlowRisk"

// Telemetry owns the meter provider and the instruments recorded by the API
type Telemetry struct {
	Meter    metric.Meter
	provider *sdkmetric.MeterProvider
	registry *prometheus.Registry
	logger   logger.Logger

	httpRequests metric.Int64Counter
	runCount     metric.Int64Counter
	runDuration  metric.Float64Histogram
}

var _ runs.RunRecorder = (*Telemetry)(nil)

// NewTelemetry creates a meter provider exporting to a private Prometheus registry
func NewTelemetry(logger logger.Logger) (*Telemetry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(meterName)

	httpRequests, err := meter.Int64Counter("flowrisk.http.requests",
		metric.WithDescription("HTTP requests served, by method, route and status"))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request counter: %w", err)
	}

	runCount, err := meter.Int64Counter("flowrisk.runs",
		metric.WithDescription("Stress-test runs, by scenario type and outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create run counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("flowrisk.run.duration",
		metric.WithDescription("Time spent simulating and storing a stress-test run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30))
	if err != nil {
		return nil, fmt.Errorf("failed to create run duration histogram: %w", err)
	}

	logger.Info("Telemetry initialized", "meter", meterName)
	return &Telemetry{
		Meter:        meter,
		provider:     provider,
		registry:     registry,
		logger:       logger,
		httpRequests: httpRequests,
		runCount:     runCount,
		runDuration:  runDuration,
	}, nil
}

// Handler serves the registry in the Prometheus text format
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest counts one served request. route is the matched route template.
func (t *Telemetry) RecordHTTPRequest(ctx context.Context, method, route string, status int) {
	t.httpRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
}

// RecordRun counts a run and observes its duration
func (t *Telemetry) RecordRun(ctx context.Context, scenarioType, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("scenario_type", scenarioType),
		attribute.String("outcome", outcome),
	)
	t.runCount.Add(ctx, 1, attrs)
	t.runDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown flushes and stops the meter provider
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down meter provider: %w", err)
	}
	return nil
}
