package metrics

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/MikeMC777/beyblade-store/internal/config"
)

const meterName = "github.com/MikeMC777/beyblade-store/xano"

// ClientMetrics holds the instruments recorded around every backend call.
// A nil *ClientMetrics records nothing.
type ClientMetrics struct {
	RequestsTotal   metric.Int64Counter
	RequestErrors   metric.Int64Counter
	RequestDuration metric.Float64Histogram
}

func NewClientMetrics(mp metric.MeterProvider) (*ClientMetrics, error) {
	meter := mp.Meter(meterName)

	total, err := meter.Int64Counter("xano.requests.total",
		metric.WithDescription("Requests issued to the Xano backend"))
	if err != nil {
		return nil, fmt.Errorf("requests counter: %w", err)
	}
	errs, err := meter.Int64Counter("xano.requests.errors",
		metric.WithDescription("Requests that failed at transport level or returned a non-2xx status"))
	if err != nil {
		return nil, fmt.Errorf("errors counter: %w", err)
	}
	dur, err := meter.Float64Histogram("xano.request.duration",
		metric.WithDescription("Backend request duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}
	return &ClientMetrics{RequestsTotal: total, RequestErrors: errs, RequestDuration: dur}, nil
}

// Record stores one finished request. status is 0 when no response arrived.
func (m *ClientMetrics) Record(ctx context.Context, method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("xano.path", path),
		attribute.Int("http.status_code", status),
	)
	m.RequestsTotal.Add(ctx, 1, attrs)
	if status == 0 || status >= 400 {
		m.RequestErrors.Add(ctx, 1, attrs)
	}
	m.RequestDuration.Record(ctx, float64(d.Milliseconds()), attrs)
}

// Init builds the meter provider. With metrics disabled it returns a no-op
// provider so callers never branch on configuration.
func Init(ctx context.Context, cfg config.Config) (metric.MeterProvider, func(context.Context) error, error) {
	if !cfg.MetricsEnabled {
		return noop.NewMeterProvider(), func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.OTELServiceName),
			semconv.ServiceVersion(cfg.OTELServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
	)
	otel.SetMeterProvider(provider)
	log.Printf("[metrics] exporting to %s", cfg.OTLPEndpoint)
	return provider, provider.Shutdown, nil
}
