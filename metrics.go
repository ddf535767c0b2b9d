package temporalparseable

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// activityMetricsInterceptor is a worker interceptor that records OTel
// metrics for activity executions:
//
//	temporal.activity.started    counter
//	temporal.activity.completed  counter
//	temporal.activity.failed     counter
//	temporal.activity.duration   histogram (seconds)
//
// All instruments carry activity_type, workflow_type, task_queue and
// namespace attributes for filtering in Parseable.
//
// Workflow executions are deliberately left alone: workflow code runs inside
// Temporal's deterministic sandbox where wall-clock reads are off limits, and
// workflow-level visibility is already covered by the tracing interceptor.
type activityMetricsInterceptor struct {
	interceptor.WorkerInterceptorBase

	started   metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

func newActivityMetricsInterceptor(meter metric.Meter) (*activityMetricsInterceptor, error) {
	i := &activityMetricsInterceptor{}
	var err error
	if i.started, err = meter.Int64Counter("temporal.activity.started",
		metric.WithDescription("Activities started"),
	); err != nil {
		return nil, fmt.Errorf("temporal parseable: create started counter: %w", err)
	}
	if i.completed, err = meter.Int64Counter("temporal.activity.completed",
		metric.WithDescription("Activities completed successfully"),
	); err != nil {
		return nil, fmt.Errorf("temporal parseable: create completed counter: %w", err)
	}
	if i.failed, err = meter.Int64Counter("temporal.activity.failed",
		metric.WithDescription("Activities that returned an error"),
	); err != nil {
		return nil, fmt.Errorf("temporal parseable: create failed counter: %w", err)
	}
	if i.duration, err = meter.Float64Histogram("temporal.activity.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Activity execution duration in seconds"),
	); err != nil {
		return nil, fmt.Errorf("temporal parseable: create duration histogram: %w", err)
	}
	return i, nil
}

func (i *activityMetricsInterceptor) InterceptActivity(
	ctx context.Context,
	next interceptor.ActivityInboundInterceptor,
) interceptor.ActivityInboundInterceptor {
	inbound := &activityMetricsInbound{metrics: i}
	inbound.Next = next
	return inbound
}

type activityMetricsInbound struct {
	interceptor.ActivityInboundInterceptorBase
	metrics *activityMetricsInterceptor
}

func (a *activityMetricsInbound) ExecuteActivity(
	ctx context.Context,
	in *interceptor.ExecuteActivityInput,
) (any, error) {
	info := activity.GetInfo(ctx)
	workflowType := ""
	if info.WorkflowType != nil {
		workflowType = info.WorkflowType.Name
	}
	attrs := metric.WithAttributes(
		attribute.String("activity_type", info.ActivityType.Name),
		attribute.String("workflow_type", workflowType),
		attribute.String("task_queue", info.TaskQueue),
		attribute.String("namespace", info.WorkflowNamespace),
	)

	a.metrics.started.Add(ctx, 1, attrs)
	start := time.Now()
	out, err := a.Next.ExecuteActivity(ctx, in)
	a.metrics.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		a.metrics.failed.Add(ctx, 1, attrs)
	} else {
		a.metrics.completed.Add(ctx, 1, attrs)
	}
	return out, err
}
