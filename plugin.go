package temporalparseable

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	tlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"goa.design/clue/log"
)

// instrumentationName scopes the tracers, meters and loggers created by the
// plugin.
const instrumentationName = "github.com/parseablehq/temporal-parseable-go"

// Plugin wires Temporal telemetry to Parseable. It owns a Runtime of OTel
// providers and contributes two things to the Temporal SDK: client options
// (logger, metrics handler, tracing interceptor, connection settings) and
// worker interceptors (activity metrics). Construct one per process with New,
// use it for every client and worker that should share the pipeline, and call
// Shutdown after they have stopped.
//
// Plugins constructed from the same Config are fully independent; each owns
// its own providers and exporters.
type Plugin struct {
	cfg     Config
	runtime *Runtime

	tracing         interceptor.Interceptor
	metricsHandler  client.MetricsHandler
	activityMetrics interceptor.WorkerInterceptor
	logger          tlog.Logger
}

// New constructs a plugin from the given configuration. Only the signals
// enabled in the configuration get providers, interceptors and bridges; a
// fully disabled configuration yields a plugin that contributes nothing
// beyond connection settings.
//
// No connection to Parseable is attempted here. If the backend is down the
// process still starts and the exporters drop batches per the SDK's policy.
func New(ctx context.Context, cfg Config) (*Plugin, error) {
	rt, err := NewRuntime(ctx, cfg)
	if err != nil {
		return nil, err
	}

	p := &Plugin{cfg: cfg, runtime: rt}

	if tp := rt.TracerProvider(); tp != nil {
		tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
			Tracer: tp.Tracer(instrumentationName),
		})
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("temporal parseable: configure tracing interceptor: %w", err),
				rt.Shutdown(ctx),
			)
		}
		p.tracing = tracing
		log.Printf(ctx, "traces enabled, exporting to stream %q", cfg.TracesStream)
	}

	if lp := rt.LoggerProvider(); lp != nil {
		p.logger = newTemporalLogger(lp)
		log.Printf(ctx, "logs enabled, exporting to stream %q", cfg.LogsStream)
	}

	if mp := rt.MeterProvider(); mp != nil {
		meter := mp.Meter(instrumentationName)
		p.metricsHandler = temporalotel.NewMetricsHandler(temporalotel.MetricsHandlerOptions{
			Meter: meter,
		})
		activityMetrics, err := newActivityMetricsInterceptor(meter)
		if err != nil {
			return nil, errors.Join(err, rt.Shutdown(ctx))
		}
		p.activityMetrics = activityMetrics
		log.Printf(ctx, "metrics enabled, exporting to stream %q", cfg.MetricsStream)
	}

	return p, nil
}

// Config returns a copy of the plugin's configuration.
func (p *Plugin) Config() Config { return p.cfg }

// Runtime returns the OTel providers backing this plugin.
func (p *Plugin) Runtime() *Runtime { return p.runtime }

// ClientOptions returns Temporal client options carrying the configured
// connection settings plus whatever telemetry is enabled: the tracing
// interceptor (spans for every workflow/activity boundary, propagated across
// task boundaries by the SDK), the metrics handler (Temporal SDK-internal
// metrics such as long-poll latency and task-slot usage), and the bridged
// logger. Workers created from the resulting client inherit the tracing
// interceptor, so WorkerInterceptors only adds what is worker-specific.
func (p *Plugin) ClientOptions() client.Options {
	opts := client.Options{
		HostPort:  p.cfg.TemporalHostPort,
		Namespace: p.cfg.TemporalNamespace,
	}
	if p.tracing != nil {
		opts.Interceptors = append(opts.Interceptors, p.tracing)
	}
	if p.metricsHandler != nil {
		opts.MetricsHandler = p.metricsHandler
	}
	if p.logger != nil {
		opts.Logger = p.logger
	}
	return opts
}

// WorkerInterceptors returns the interceptors to install on workers: the
// activity metrics recorder when metrics are enabled. Tracing is not
// duplicated here; it reaches workers through the client interceptor
// contributed by ClientOptions.
func (p *Plugin) WorkerInterceptors() []interceptor.WorkerInterceptor {
	var out []interceptor.WorkerInterceptor
	if p.activityMetrics != nil {
		out = append(out, p.activityMetrics)
	}
	return out
}

// Dial connects to Temporal using ClientOptions.
func (p *Plugin) Dial(ctx context.Context) (client.Client, error) {
	c, err := client.DialContext(ctx, p.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("temporal parseable: dial temporal: %w", err)
	}
	return c, nil
}

// NewWorker creates a worker on the given task queue with the plugin's
// worker interceptors appended to opts.
func (p *Plugin) NewWorker(c client.Client, taskQueue string, opts worker.Options) worker.Worker {
	opts.Interceptors = append(opts.Interceptors, p.WorkerInterceptors()...)
	return worker.New(c, taskQueue, opts)
}

// Shutdown flushes and closes the plugin's telemetry pipeline. Call it after
// the worker and client have stopped so in-flight spans, logs and metrics are
// delivered.
func (p *Plugin) Shutdown(ctx context.Context) error {
	log.Printf(ctx, "shutting down telemetry pipeline")
	return p.runtime.Shutdown(ctx)
}
