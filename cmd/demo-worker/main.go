// Command demo-worker runs a Temporal worker instrumented with the Parseable
// plugin. It hosts the demo workflows and activities; run demo-client in
// another terminal to start executions and generate telemetry.
//
// # Configuration
//
// Environment variables (all optional):
//
//	PARSEABLE_URL                 - Parseable base URL (default: "http://localhost:8000")
//	PARSEABLE_USERNAME            - Parseable username (default: "admin")
//	PARSEABLE_PASSWORD            - Parseable password (default: "admin")
//	PARSEABLE_TRACES_STREAM       - traces stream name (default: "temporal-traces")
//	PARSEABLE_LOGS_STREAM         - logs stream name (default: "temporal-logs")
//	PARSEABLE_METRICS_STREAM      - metrics stream name (default: "temporal-metrics")
//	PARSEABLE_TEMPORAL_HOST       - Temporal frontend (default: "localhost:7233")
//	PARSEABLE_TEMPORAL_NAMESPACE  - Temporal namespace (default: "default")
//	PARSEABLE_SERVICE_NAME        - service.name attribute (default: "temporal-worker")
//	PARSEABLE_ENABLE_TRACES       - export traces (default: true)
//	PARSEABLE_ENABLE_LOGS         - export logs (default: true)
//	PARSEABLE_ENABLE_METRICS      - export metrics (default: true)
//
// # Example
//
//	PARSEABLE_URL=http://localhost:8000 go run ./cmd/demo-worker
package main

import (
	"context"
	"time"

	temporalparseable "github.com/parseablehq/temporal-parseable-go"
	"github.com/parseablehq/temporal-parseable-go/demo"
	"go.temporal.io/sdk/worker"
	"goa.design/clue/log"
)

func main() {
	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))

	if err := run(ctx); err != nil {
		log.Fatalf(ctx, err, "demo worker failed")
	}
}

func run(ctx context.Context) error {
	cfg, err := temporalparseable.LoadConfig()
	if err != nil {
		return err
	}

	plugin, err := temporalparseable.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := plugin.Shutdown(shutdownCtx); err != nil {
			log.Errorf(shutdownCtx, err, "telemetry shutdown")
		}
	}()

	log.Printf(ctx, "connecting to Temporal at %s (namespace %s)",
		cfg.TemporalHostPort, cfg.TemporalNamespace)
	c, err := plugin.Dial(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	w := plugin.NewWorker(c, demo.TaskQueue, worker.Options{})
	demo.Register(w)

	log.Printf(ctx, "worker running on task queue %q", demo.TaskQueue)
	return w.Run(worker.InterruptCh())
}
