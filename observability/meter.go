package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/apikit/logger"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// ClientMetrics holds the instruments recorded by an API client.
type ClientMetrics struct {
	callTotal    metric.Int64Counter
	callDuration metric.Float64Histogram
	callActive   metric.Int64UpDownCounter
	signInTotal  metric.Int64Counter
}

// NewClientMetrics creates client instruments on meter. A nil meter uses
// the global provider.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	if meter == nil {
		meter = otel.Meter(TracerName)
	}

	callTotal, err := meter.Int64Counter("apiclient.calls",
		metric.WithDescription("Completed API calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.calls counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("apiclient.call.duration",
		metric.WithDescription("Duration of API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.call.duration histogram: %w", err)
	}

	callActive, err := meter.Int64UpDownCounter("apiclient.calls.active",
		metric.WithDescription("API calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.calls.active counter: %w", err)
	}

	signInTotal, err := meter.Int64Counter("apiclient.sign_ins",
		metric.WithDescription("Sign-in attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.sign_ins counter: %w", err)
	}

	return &ClientMetrics{
		callTotal:    callTotal,
		callDuration: callDuration,
		callActive:   callActive,
		signInTotal:  signInTotal,
	}, nil
}

// CallStarted increments the in-flight gauge.
func (m *ClientMetrics) CallStarted(ctx context.Context) {
	m.callActive.Add(ctx, 1)
}

// CallFinished decrements the in-flight gauge and records the outcome.
// outcome is "ok" or the error kind.
func (m *ClientMetrics) CallFinished(ctx context.Context, client, method, outcome string, d time.Duration) {
	m.callActive.Add(ctx, -1)
	m.callTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client", client),
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
	m.callDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("client", client),
		attribute.String("method", method),
	))
}

// SignIn records a sign-in attempt.
func (m *ClientMetrics) SignIn(ctx context.Context, client string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.signInTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client", client),
		attribute.String("outcome", outcome),
	))
}
