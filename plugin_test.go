package temporalparseable_test

import (
	"context"
	"testing"

	temporalparseable "github.com/parseablehq/temporal-parseable-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPluginDefaults(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()

	cfg := temporalparseable.DefaultConfig()
	temporalparseable.WithURL(srv.URL)(&cfg)

	plugin, err := temporalparseable.New(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, plugin.Shutdown(ctx)) }()

	opts := plugin.ClientOptions()
	assert.Equal(t, "localhost:7233", opts.HostPort)
	assert.Equal(t, "default", opts.Namespace)
	assert.Len(t, opts.Interceptors, 1)
	assert.NotNil(t, opts.MetricsHandler)
	assert.NotNil(t, opts.Logger)

	assert.Len(t, plugin.WorkerInterceptors(), 1)
}

func TestNewPluginAllSignalsDisabled(t *testing.T) {
	ctx := context.Background()

	cfg := temporalparseable.DefaultConfig()
	temporalparseable.WithSignals(false, false, false)(&cfg)
	temporalparseable.WithTemporalHostPort("temporal.example.com:7233")(&cfg)
	temporalparseable.WithTemporalNamespace("staging")(&cfg)

	plugin, err := temporalparseable.New(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, plugin.Shutdown(ctx)) }()

	rt := plugin.Runtime()
	assert.Nil(t, rt.TracerProvider())
	assert.Nil(t, rt.LoggerProvider())
	assert.Nil(t, rt.MeterProvider())

	opts := plugin.ClientOptions()
	assert.Equal(t, "temporal.example.com:7233", opts.HostPort)
	assert.Equal(t, "staging", opts.Namespace)
	assert.Empty(t, opts.Interceptors)
	assert.Nil(t, opts.MetricsHandler)
	assert.Nil(t, opts.Logger)

	assert.Empty(t, plugin.WorkerInterceptors())
}

func TestPluginsAreIndependent(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()

	cfg := temporalparseable.DefaultConfig()
	temporalparseable.WithURL(srv.URL)(&cfg)

	p1, err := temporalparseable.New(ctx, cfg)
	require.NoError(t, err)
	p2, err := temporalparseable.New(ctx, cfg)
	require.NoError(t, err)

	assert.NotSame(t, p1.Runtime(), p2.Runtime())
	assert.NotSame(t, p1.Runtime().TracerProvider(), p2.Runtime().TracerProvider())

	// Shutting one down must not affect the other.
	require.NoError(t, p1.Shutdown(ctx))
	require.NoError(t, p2.Shutdown(ctx))
}

func TestPluginConfigIsCopied(t *testing.T) {
	ctx := context.Background()

	cfg := temporalparseable.DefaultConfig()
	temporalparseable.WithSignals(false, false, false)(&cfg)

	plugin, err := temporalparseable.New(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, plugin.Shutdown(ctx)) }()

	// Mutating the caller's value after construction changes nothing.
	cfg.URL = "http://mutated:1234"
	assert.Equal(t, "http://localhost:8000", plugin.Config().URL)

	// Config() hands out copies, not a shared reference.
	got := plugin.Config()
	got.ServiceName = "mutated"
	assert.Equal(t, "temporal-worker", plugin.Config().ServiceName)
}
