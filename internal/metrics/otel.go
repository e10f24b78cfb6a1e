package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName    = "nhl-lineup-service"
	defaultExportInterval = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled        bool
	Port           string
	ServiceName    string
	OtlpEndpoint   string
	OtlpInsecure   bool
	ExportInterval time.Duration
}

// Setup builds a meter provider that always serves Prometheus and, when an
// endpoint is set, also pushes over OTLP/HTTP. Disabled telemetry yields an
// in-memory Recorder, no handler and a no-op shutdown.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.ExportInterval <= 0 {
		cfg.ExportInterval = defaultExportInterval
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}
	readers := []sdkmetric.Reader{promReader}
	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		readers = append(readers, otlpReader)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)

	inst, err := instrumentFactory(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	return newRecorder(inst), promHandler, provider.Shutdown, nil
}

func buildOTLPReader(ctx context.Context, cfg TelemetryConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OtlpEndpoint)}
	if cfg.OtlpInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.ExportInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg), promexporter.WithoutUnits())
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx               context.Context
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	runs              metric.Int64Counter
	runErrors         metric.Int64Counter
	runLatencyMs      metric.Float64Histogram
	submissions       metric.Int64Counter
	notifications     metric.Int64Counter
	notifyErrors      metric.Int64Counter
}

// instrumentSet creates instruments on one meter and keeps the first error.
type instrumentSet struct {
	meter metric.Meter
	err   error
}

func (s *instrumentSet) counter(name, desc string) metric.Int64Counter {
	c, err := s.meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil && s.err == nil {
		s.err = err
	}
	return c
}

func (s *instrumentSet) millis(name, desc string) metric.Float64Histogram {
	h, err := s.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("ms"))
	if err != nil && s.err == nil {
		s.err = err
	}
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	set := &instrumentSet{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		ctx:               context.Background(),
		requests:          set.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs:  set.millis("http_request_duration_ms", "HTTP request latency"),
		providerAttempts:  set.counter("provider_attempts_total", "Upstream calls to Yahoo or the NHL schedule"),
		providerErrors:    set.counter("provider_errors_total", "Failed upstream calls"),
		providerLatencyMs: set.millis("provider_duration_ms", "Upstream call latency"),
		rateLimitHits:     set.counter("provider_rate_limit_hits_total", "Upstream 429 responses"),
		retryAfterMs:      set.millis("provider_retry_after_ms", "Retry-After advertised by upstream"),
		runs:              set.counter("lineup_runs_total", "Lineup runs by outcome"),
		runErrors:         set.counter("lineup_run_errors_total", "Lineup runs that returned an error"),
		runLatencyMs:      set.millis("lineup_run_duration_ms", "End-to-end lineup run latency"),
		submissions:       set.counter("lineup_submissions_total", "Roster PUTs by response status"),
		notifications:     set.counter("notifications_total", "Notifications attempted by channel"),
		notifyErrors:      set.counter("notification_errors_total", "Notifications that failed by channel"),
	}
	if set.err != nil {
		return nil, set.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatencyMs.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfterMs.Record(o.ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordRun(duration time.Duration, outcome string, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrOutcome, outcome))
	o.runs.Add(o.ctx, 1, attrs)
	o.runLatencyMs.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.runErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordSubmission(status int) {
	if o == nil {
		return
	}
	o.submissions.Add(o.ctx, 1, metric.WithAttributes(attribute.Int(AttrStatus, status)))
}

func (o *otelInstruments) recordNotification(channel string, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrChannel, channel))
	o.notifications.Add(o.ctx, 1, attrs)
	if err != nil {
		o.notifyErrors.Add(o.ctx, 1, attrs)
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
