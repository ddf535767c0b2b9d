// Command demo-client starts the demo workflows against a running
// demo-worker, producing traces, logs and metrics in Parseable.
//
// It honors the same PARSEABLE_* environment variables as demo-worker.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	temporalparseable "github.com/parseablehq/temporal-parseable-go"
	"github.com/parseablehq/temporal-parseable-go/demo"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"goa.design/clue/log"
)

func main() {
	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))

	if err := run(ctx); err != nil {
		log.Fatalf(ctx, err, "demo client failed")
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

	c, err := plugin.Dial(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	for _, name := range []string{"Alice", "Bob", "Charlie"} {
		id := fmt.Sprintf("greeting-%s-%s", strings.ToLower(name), shortID())
		log.Printf(ctx, "starting greeting workflow %q", id)
		wfRun, err := c.ExecuteWorkflow(ctx, startOptions(id), demo.GreetingWorkflow, name)
		if err != nil {
			return fmt.Errorf("start greeting workflow: %w", err)
		}
		var result string
		if err := wfRun.Get(ctx, &result); err != nil {
			return fmt.Errorf("greeting workflow %q: %w", id, err)
		}
		log.Printf(ctx, "result: %s", result)
	}

	orders := []demo.OrderItem{
		{Product: "Widget", Quantity: 5, Price: 9.99},
		{Product: "Gadget", Quantity: 2, Price: 24.50},
		{Product: "Invalid", Quantity: -1, Price: 10.00},
	}
	for _, order := range orders {
		id := fmt.Sprintf("order-%s-%s", strings.ToLower(order.Product), shortID())
		log.Printf(ctx, "starting order workflow %q (%s)", id, order.Product)
		wfRun, err := c.ExecuteWorkflow(ctx, startOptions(id), demo.OrderWorkflow, order)
		if err != nil {
			return fmt.Errorf("start order workflow: %w", err)
		}
		var result string
		if err := wfRun.Get(ctx, &result); err != nil {
			return fmt.Errorf("order workflow %q: %w", id, err)
		}
		log.Printf(ctx, "result: %s", result)
	}

	log.Printf(ctx, "all demo workflows completed")
	return nil
}

func startOptions(id string) client.StartWorkflowOptions {
	return client.StartWorkflowOptions{
		ID:                    id,
		TaskQueue:             demo.TaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}
