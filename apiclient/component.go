package apiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/apikit/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component manages a Client's lifecycle for hosts that start and stop
// their dependencies. The client is created in Start.
type Component struct {
	config Config
	opts   []Option
	// ProbePath, when set, is fetched with GET by Health.
	ProbePath string

	client *Client
}

// NewComponent creates a component; nothing is validated until Start.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the configured client name.
func (c *Component) Name() string {
	if c.config.Name == "" {
		return "apiclient"
	}
	return c.config.Name
}

// Start creates the client.
func (c *Component) Start(context.Context) error {
	client, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(context.Context) error {
	if c.client != nil {
		c.client.httpClient.CloseIdleConnections()
	}
	return nil
}

// Client returns the client created by Start, nil before it.
func (c *Component) Client() *Client {
	return c.client
}

// Describe summarizes the configured endpoint.
func (c *Component) Describe() component.Description {
	cfg := c.config
	cfg.ApplyDefaults()
	return component.Description{
		Name:    "API client " + cfg.Name,
		Type:    "apiclient",
		Details: fmt.Sprintf("%s timeout=%s encoding=%s", cfg.RootURL, cfg.Timeout, cfg.Encoding),
	}
}

// Health reports unhealthy before Start or when the probe fails, and
// degraded when the probe is refused for lack of a session. A client that
// has not signed in yet is healthy, since sign-in is lazy.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.client == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
		return h
	}
	h.Details = map[string]string{
		"root_url":      c.client.RootURL(),
		"session_state": c.client.SessionState().String(),
	}
	if c.ProbePath == "" {
		return h
	}

	if _, err := c.client.Get(ctx, c.ProbePath); err != nil {
		h.Status = component.StatusUnhealthy
		if IsSignIn(err) || IsAuth(err) {
			h.Status = component.StatusDegraded
		}
		h.Message = err.Error()
		var apiErr *Error
		if errors.As(err, &apiErr) {
			h.Details["error_kind"] = apiErr.Kind.String()
		}
	}
	return h
}
