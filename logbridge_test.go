package temporalparseable

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) all() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]sdklog.Record(nil), e.records...)
}

func TestTemporalLoggerBridgesToLogProvider(t *testing.T) {
	exporter := &memoryLogExporter{}
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
	)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	logger := newTemporalLogger(provider)
	logger.Info("worker started", "TaskQueue", "parseable-demo")
	logger.Warn("slow poll")
	logger.Error("activity failed", "Attempt", 3)

	records := exporter.all()
	require.Len(t, records, 3)

	assert.Equal(t, "worker started", records[0].Body().AsString())
	assert.Equal(t, log.SeverityInfo, records[0].Severity())
	found := false
	records[0].WalkAttributes(func(kv log.KeyValue) bool {
		if kv.Key == "TaskQueue" {
			found = true
			assert.Equal(t, "parseable-demo", kv.Value.AsString())
		}
		return true
	})
	assert.True(t, found, "TaskQueue attribute not bridged")

	assert.Equal(t, log.SeverityWarn, records[1].Severity())
	assert.Equal(t, log.SeverityError, records[2].Severity())
}
