package temporalparseable

import (
	"context"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricpb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"google.golang.org/protobuf/proto"
)

// The exporter factories below bind each OTLP/HTTP exporter to its Parseable
// stream: the stream and signal select the X-P-* ingestion headers, and the
// HTTP client re-encodes the protobuf payload as OTLP/JSON on the way out.
// Retry and backoff behavior is whatever the exporter SDK ships; nothing here
// changes it.

func newSpanExporter(ctx context.Context, cfg Config) (*otlptrace.Exporter, error) {
	return otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.TracesEndpoint()),
		otlptracehttp.WithHeaders(cfg.HeadersForSignal(cfg.TracesStream, "traces")),
		otlptracehttp.WithHTTPClient(newJSONClient(func() proto.Message {
			return new(coltracepb.ExportTraceServiceRequest)
		})),
	)
}

func newLogExporter(ctx context.Context, cfg Config) (*otlploghttp.Exporter, error) {
	return otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(cfg.LogsEndpoint()),
		otlploghttp.WithHeaders(cfg.HeadersForSignal(cfg.LogsStream, "logs")),
		otlploghttp.WithHTTPClient(newJSONClient(func() proto.Message {
			return new(collogspb.ExportLogsServiceRequest)
		})),
	)
}

func newMetricExporter(ctx context.Context, cfg Config) (*otlpmetrichttp.Exporter, error) {
	return otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpointURL(cfg.MetricsEndpoint()),
		otlpmetrichttp.WithHeaders(cfg.HeadersForSignal(cfg.MetricsStream, "metrics")),
		otlpmetrichttp.WithHTTPClient(newJSONClient(func() proto.Message {
			return new(colmetricpb.ExportMetricsServiceRequest)
		})),
	)
}
