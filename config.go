package temporalparseable

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is the prefix shared by all environment variables read by
// LoadConfig. For example, PARSEABLE_URL sets Config.URL.
const EnvPrefix = "PARSEABLE_"

// Config describes how to reach Parseable and Temporal and which telemetry
// signals to export. Values are plain data; a Config is copied on plugin
// construction and never mutated afterwards. Build one with DefaultConfig or
// LoadConfig, then pass it to New.
type Config struct {
	// Parseable connection.
	URL      string `env:"URL" envDefault:"http://localhost:8000"`
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin"`

	// Parseable stream names, one per signal.
	TracesStream  string `env:"TRACES_STREAM" envDefault:"temporal-traces"`
	LogsStream    string `env:"LOGS_STREAM" envDefault:"temporal-logs"`
	MetricsStream string `env:"METRICS_STREAM" envDefault:"temporal-metrics"`

	// Temporal connection.
	TemporalHostPort  string `env:"TEMPORAL_HOST" envDefault:"localhost:7233"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`

	// OpenTelemetry service identity.
	ServiceName string `env:"SERVICE_NAME" envDefault:"temporal-worker"`

	// Signal toggles.
	EnableTraces  bool `env:"ENABLE_TRACES" envDefault:"true"`
	EnableLogs    bool `env:"ENABLE_LOGS" envDefault:"true"`
	EnableMetrics bool `env:"ENABLE_METRICS" envDefault:"true"`
}

// Option overrides a single configuration value. Options are applied after
// the environment is read, so an explicit override always wins over the
// corresponding environment variable.
type Option func(*Config)

// WithURL sets the Parseable base URL.
func WithURL(url string) Option {
	return func(c *Config) { c.URL = url }
}

// WithCredentials sets the Parseable basic-auth credentials.
func WithCredentials(username, password string) Option {
	return func(c *Config) {
		c.Username = username
		c.Password = password
	}
}

// WithStreams sets the Parseable stream names for the three signals.
func WithStreams(traces, logs, metrics string) Option {
	return func(c *Config) {
		c.TracesStream = traces
		c.LogsStream = logs
		c.MetricsStream = metrics
	}
}

// WithTemporalHostPort sets the Temporal frontend address.
func WithTemporalHostPort(hostPort string) Option {
	return func(c *Config) { c.TemporalHostPort = hostPort }
}

// WithTemporalNamespace sets the Temporal namespace.
func WithTemporalNamespace(namespace string) Option {
	return func(c *Config) { c.TemporalNamespace = namespace }
}

// WithServiceName sets the service.name resource attribute attached to all
// exported telemetry.
func WithServiceName(name string) Option {
	return func(c *Config) { c.ServiceName = name }
}

// WithSignals toggles the three telemetry signals.
func WithSignals(traces, logs, metrics bool) Option {
	return func(c *Config) {
		c.EnableTraces = traces
		c.EnableLogs = logs
		c.EnableMetrics = metrics
	}
}

// DefaultConfig returns a Config holding the documented defaults without
// consulting the environment.
func DefaultConfig() Config {
	// Defaults are static literals, parsing cannot fail.
	cfg, _ := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: map[string]string{},
	})
	return cfg
}

// LoadConfig builds a Config from PARSEABLE_-prefixed environment variables,
// falling back to the documented default for any unset variable, then applies
// the given options. A malformed value (e.g. a boolean that is neither truthy
// nor falsy) fails immediately with an error naming the offending field.
func LoadConfig(opts ...Option) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: EnvPrefix})
	if err != nil {
		return Config{}, fmt.Errorf("temporal parseable: load config: %w", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

// AuthHeader returns the Authorization header value Parseable expects,
// i.e. RFC 7617 basic auth of username:password.
func (c Config) AuthHeader() string {
	token := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	return "Basic " + token
}

// Parseable requires a specific X-P-Log-Source value per signal type.
var logSources = map[string]string{
	"traces":  "otel-traces",
	"logs":    "otel-logs",
	"metrics": "otel-metrics",
}

// HeadersForSignal returns the HTTP headers Parseable requires to ingest the
// given signal ("traces", "logs" or "metrics") into the given stream.
func (c Config) HeadersForSignal(stream, signal string) map[string]string {
	source, ok := logSources[signal]
	if !ok {
		source = "otel-" + signal
	}
	return map[string]string{
		"Authorization":  c.AuthHeader(),
		"X-P-Stream":     stream,
		"X-P-Log-Source": source,
	}
}

// TracesEndpoint returns the OTLP/HTTP endpoint for span export.
func (c Config) TracesEndpoint() string { return c.endpoint("traces") }

// LogsEndpoint returns the OTLP/HTTP endpoint for log export.
func (c Config) LogsEndpoint() string { return c.endpoint("logs") }

// MetricsEndpoint returns the OTLP/HTTP endpoint for metric export.
func (c Config) MetricsEndpoint() string { return c.endpoint("metrics") }

func (c Config) endpoint(signal string) string {
	return strings.TrimSuffix(c.URL, "/") + "/v1/" + signal
}
