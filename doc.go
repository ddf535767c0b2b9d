// Package temporalparseable exports Temporal workflow telemetry — traces,
// logs and metrics — to Parseable over OTLP/HTTP.
//
// Configuration comes from PARSEABLE_-prefixed environment variables (or
// explicit overrides), and a single Plugin contributes everything the
// Temporal SDK needs:
//
//	cfg, err := temporalparseable.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plugin, err := temporalparseable.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer plugin.Shutdown(ctx)
//
//	c, err := plugin.Dial(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	w := plugin.NewWorker(c, "my-task-queue", worker.Options{})
//
// Each signal is independently togglable and exports to its own Parseable
// stream. Parseable ingests OTLP/JSON, so the exporters are fitted with a
// transport that re-encodes the SDK's protobuf payloads before sending.
package temporalparseable
