package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/apikit/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component installs the tracer and meter providers on Start and flushes
// them on Stop. A disabled config makes it a no-op that still hands out
// ClientMetrics bound to the global (no-op) provider.
type Component struct {
	cfg Config

	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *ClientMetrics
}

// NewComponent creates a telemetry component.
func NewComponent(cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg}
}

func (c *Component) Name() string { return "telemetry" }

func (c *Component) Start(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	if c.cfg.Enabled {
		tp, err := InitTracer(ctx, c.cfg)
		if err != nil {
			return err
		}
		mp, err := InitMeter(ctx, c.cfg)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return err
		}
		c.tp, c.mp = tp, mp
	}

	metrics, err := NewClientMetrics(nil)
	if err != nil {
		return err
	}
	c.metrics = metrics
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		if err := c.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
		c.tp = nil
	}
	if c.mp != nil {
		if err := c.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
		c.mp = nil
	}
	return errors.Join(errs...)
}

// Metrics returns the client instruments created by Start, nil before it.
func (c *Component) Metrics() *ClientMetrics { return c.metrics }

func (c *Component) Health(context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.metrics == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case !c.cfg.Enabled:
		h.Message = "export disabled"
	}
	return h
}

func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp http %s sample_rate=%v", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}
