package config

import "time"

const (
	envMetricsOn       = "METRICS_ENABLED"
	envMetricsPort     = "METRICS_PORT"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envOtelExportEvery = "OTEL_METRIC_EXPORT_INTERVAL"

	defaultMetricsPort    = "9090"
	defaultServiceName    = "nhl-lineup-service"
	defaultExportInterval = 15 * time.Second
)

// MetricsConfig controls the Prometheus listener and optional OTLP push.
type MetricsConfig struct {
	Enabled        bool
	Port           string
	ServiceName    string
	OtlpEndpoint   string // empty disables OTLP push
	OtlpInsecure   bool
	ExportInterval time.Duration
}

// PushEnabled reports whether metrics are also pushed to an OTLP collector.
func (c MetricsConfig) PushEnabled() bool {
	return c.Enabled && c.OtlpEndpoint != ""
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, true),
		Port:           envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:    envOrDefault(envOtelService, defaultServiceName),
		OtlpEndpoint:   envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, true),
		ExportInterval: durationEnvOrDefault(envOtelExportEvery, defaultExportInterval),
	}
}
