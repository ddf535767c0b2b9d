package temporalparseable

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.40.0"
)

// metricExportInterval is how often the periodic reader pushes metrics to
// Parseable.
const metricExportInterval = 10 * time.Second

// Runtime holds the OpenTelemetry SDK providers backing a plugin, one per
// enabled signal. A disabled signal's provider is nil. Providers are not
// registered globally; the plugin hands them to the Temporal interceptors and
// bridges explicitly.
//
// A Runtime owns the HTTP resources of its exporters. Call Shutdown exactly
// once, after the worker and client that use it have stopped, to flush
// buffered telemetry and release connections.
type Runtime struct {
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// NewRuntime constructs the providers selected by the configuration's enable
// flags. Spans and logs are batched, metrics are pushed periodically; all
// three export to their configured Parseable stream. No connection to the
// backend is attempted here; delivery failures surface later through the
// exporter SDK's own retry/drop policy.
func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("temporal parseable: build resource: %w", err)
	}

	rt := &Runtime{}

	if cfg.EnableTraces {
		exp, err := newSpanExporter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("temporal parseable: create span exporter: %w", err)
		}
		rt.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(exp),
		)
	}

	if cfg.EnableLogs {
		exp, err := newLogExporter(ctx, cfg)
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("temporal parseable: create log exporter: %w", err),
				rt.Shutdown(ctx),
			)
		}
		rt.loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithResource(res),
			sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
		)
	}

	if cfg.EnableMetrics {
		exp, err := newMetricExporter(ctx, cfg)
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("temporal parseable: create metric exporter: %w", err),
				rt.Shutdown(ctx),
			)
		}
		rt.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp,
				sdkmetric.WithInterval(metricExportInterval),
			)),
		)
	}

	return rt, nil
}

// TracerProvider returns the trace provider, or nil when traces are disabled.
func (r *Runtime) TracerProvider() *sdktrace.TracerProvider { return r.tracerProvider }

// LoggerProvider returns the log provider, or nil when logs are disabled.
func (r *Runtime) LoggerProvider() *sdklog.LoggerProvider { return r.loggerProvider }

// MeterProvider returns the meter provider, or nil when metrics are disabled.
func (r *Runtime) MeterProvider() *sdkmetric.MeterProvider { return r.meterProvider }

// Shutdown flushes and closes every constructed provider, joining any errors.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	if r.tracerProvider != nil {
		errs = append(errs, r.tracerProvider.Shutdown(ctx))
	}
	if r.loggerProvider != nil {
		errs = append(errs, r.loggerProvider.Shutdown(ctx))
	}
	if r.meterProvider != nil {
		errs = append(errs, r.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
