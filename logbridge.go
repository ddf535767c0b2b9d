package temporalparseable

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	tlog "go.temporal.io/sdk/log"
)

// newTemporalLogger bridges Temporal's logging into the OTel log pipeline.
// Temporal's client, worker, workflow and activity loggers all emit through
// the log.Logger configured on the client; routing that logger through the
// otelslog bridge turns every line into an OTel log record exported to the
// Parseable logs stream.
func newTemporalLogger(provider *sdklog.LoggerProvider) tlog.Logger {
	slogger := otelslog.NewLogger(instrumentationName, otelslog.WithLoggerProvider(provider))
	return tlog.NewStructuredLogger(slogger)
}
