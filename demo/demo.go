// Package demo contains the workflows and activities used by the demo worker
// and client commands to generate telemetry.
package demo

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// TaskQueue is the queue shared by the demo worker and client.
const TaskQueue = "parseable-demo"

// OrderInvalid is returned by OrderWorkflow when validation fails.
const OrderInvalid = "ORDER_INVALID"

// OrderItem is the input to OrderWorkflow.
type OrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Register registers the demo workflows and activities with the worker.
func Register(w worker.Worker) {
	w.RegisterWorkflow(GreetingWorkflow)
	w.RegisterWorkflow(OrderWorkflow)
	w.RegisterActivity(Greet)
	w.RegisterActivity(ValidateOrder)
	w.RegisterActivity(ProcessPayment)
}

// Greet returns a greeting for the given name.
func Greet(ctx context.Context, name string) (string, error) {
	activity.GetLogger(ctx).Info("generating greeting", "name", name)
	return fmt.Sprintf("Hello, %s!", name), nil
}

// ValidateOrder checks that an order has a positive quantity and price.
func ValidateOrder(ctx context.Context, item OrderItem) (bool, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("validating order",
		"product", item.Product,
		"quantity", item.Quantity,
		"price", item.Price,
	)
	if item.Quantity <= 0 || item.Price <= 0 {
		logger.Warn("invalid order parameters", "product", item.Product)
		return false, nil
	}
	return true, nil
}

// ProcessPayment charges for an order and returns a confirmation code.
func ProcessPayment(ctx context.Context, item OrderItem) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("processing payment",
		"product", item.Product,
		"amount", item.Price*float64(item.Quantity),
	)
	// Simulate processing time.
	time.Sleep(500 * time.Millisecond)
	h := fnv.New32a()
	h.Write([]byte(item.Product))
	confirmation := fmt.Sprintf("PAY-%05d", h.Sum32()%100000)
	logger.Info("payment confirmed", "confirmation", confirmation)
	return confirmation, nil
}

// GreetingWorkflow runs a single greeting activity.
func GreetingWorkflow(ctx workflow.Context, name string) (string, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("greeting workflow started", "name", name)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
	})

	var result string
	if err := workflow.ExecuteActivity(ctx, Greet, name).Get(ctx, &result); err != nil {
		return "", err
	}
	logger.Info("greeting workflow completed", "result", result)
	return result, nil
}

// OrderWorkflow validates an order and, when valid, processes payment.
func OrderWorkflow(ctx workflow.Context, item OrderItem) (string, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order workflow started", "product", item.Product)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
	})

	var valid bool
	if err := workflow.ExecuteActivity(ctx, ValidateOrder, item).Get(ctx, &valid); err != nil {
		return "", err
	}
	if !valid {
		logger.Error("order validation failed", "product", item.Product)
		return OrderInvalid, nil
	}

	payCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
	})
	var confirmation string
	if err := workflow.ExecuteActivity(payCtx, ProcessPayment, item).Get(payCtx, &confirmation); err != nil {
		return "", err
	}
	logger.Info("order workflow completed", "confirmation", confirmation)
	return confirmation, nil
}
