package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/antchfx/xmlquery"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/encoding"

	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/version"
)

// Client sends requests to one web API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config
	rootURL    string
	latch      *Latch
	log        *logger.Logger
	metrics    *observability.ClientMetrics

	jar         http.CookieJar
	auth        Authenticator
	headerCreds HeaderInjector
	queryCreds  QueryInjector
	optErr      error
	userAgent   string

	mu             sync.RWMutex
	enc            encoding.Encoding
	encName        string
	defaultContent ContentKind
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc instead of a client built from
// Config.Timeout and Config.TLS.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCookieJar keeps cookies between calls, as session sign-ins require.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) { c.jar = jar }
}

// WithLogger replaces the "apiclient" named logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records call and sign-in metrics.
func WithMetrics(m *observability.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithUserAgent replaces the default "apikit/<version>" User-Agent.
// Headers from Config or a Request still take precedence.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithAuthenticator sets the sign-in hook.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) { c.auth = a }
}

// WithHeaderInjector sets the header credential hook.
func WithHeaderInjector(h HeaderInjector) Option {
	return func(c *Client) { c.headerCreds = h }
}

// WithQueryInjector sets the query credential hook.
func WithQueryInjector(q QueryInjector) Option {
	return func(c *Client) { c.queryCreds = q }
}

// WithCredentials installs v as every hook it implements: Authenticator,
// HeaderInjector and QueryInjector. v must implement at least one.
func WithCredentials(v any) Option {
	return func(c *Client) {
		matched := false
		if a, ok := v.(Authenticator); ok {
			c.auth, matched = a, true
		}
		if h, ok := v.(HeaderInjector); ok {
			c.headerCreds, matched = h, true
		}
		if q, ok := v.(QueryInjector); ok {
			c.queryCreds, matched = q, true
		}
		if !matched {
			c.optErr = NewArgumentError("credentials %T implement no credential hook", v)
		}
	}
}

// New creates a client. cfg is defaulted and validated; failures are
// argument errors.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, NewArgumentError("%v", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, &Error{Kind: KindArgument, Message: "invalid client config", Err: err}
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	c := &Client{
		httpClient:     &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:         cfg,
		rootURL:        strings.TrimRight(cfg.RootURL, "/"),
		enc:            enc,
		encName:        cfg.Encoding,
		defaultContent: cfg.DefaultContent,
		userAgent:      version.UserAgent("apikit"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.optErr != nil {
		return nil, c.optErr
	}
	if c.jar != nil {
		c.httpClient.Jar = c.jar
	}
	if c.log == nil {
		c.log = logger.Get("apiclient")
	}
	c.log = c.log.WithFields(logger.Fields("client", cfg.Name))
	c.latch = NewLatch(c.signIn)
	c.latch.Timeout = cfg.Timeout
	return c, nil
}

// Name returns the configured client name.
func (c *Client) Name() string { return c.config.Name }

// RootURL returns the normalized root URL.
func (c *Client) RootURL() string { return c.rootURL }

// SessionState returns the sign-in progress.
func (c *Client) SessionState() SessionState { return c.latch.State() }

// Unwrap returns the underlying *http.Client.
func (c *Client) Unwrap() *http.Client { return c.httpClient }

// Encoding returns the charset name used for text bodies.
func (c *Client) Encoding() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.encName
}

// SetEncoding changes the charset used for text bodies of later calls.
func (c *Client) SetEncoding(name string) error {
	enc, err := lookupEncoding(name)
	if err != nil {
		return NewArgumentError("%v", err)
	}
	c.mu.Lock()
	c.enc, c.encName = enc, name
	c.mu.Unlock()
	return nil
}

// DefaultContent returns what ContentAuto resolves to.
func (c *Client) DefaultContent() ContentKind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultContent
}

// SetDefaultContent changes what ContentAuto resolves to. It may not be
// ContentAuto itself.
func (c *Client) SetDefaultContent(k ContentKind) error {
	if !k.Valid() || k == ContentAuto {
		return NewArgumentError("invalid default content kind %q", string(k))
	}
	c.mu.Lock()
	c.defaultContent = k
	c.mu.Unlock()
	return nil
}

func (c *Client) settings() (encoding.Encoding, ContentKind) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enc, c.defaultContent
}

// signIn runs the Authenticator on behalf of the latch.
func (c *Client) signIn(ctx context.Context) error {
	if c.auth == nil {
		return nil
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanSignIn,
		attribute.String(observability.AttrClient, c.config.Name))
	defer span.End()

	start := time.Now()
	err := c.auth.SignIn(ctx, c)
	if c.metrics != nil {
		c.metrics.SignIn(ctx, c.config.Name, err)
	}

	fields := logger.Fields(logger.FieldDuration, time.Since(start).Milliseconds())
	if err != nil {
		observability.SetSpanError(ctx, err)
		c.log.Warn("sign-in failed", logger.MergeWithError(fields, err))
		return err
	}
	c.log.Info("signed in", fields)
	return nil
}

// Do runs req through the full pipeline. On a transport error the
// *Response is returned alongside the error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanCall,
		attribute.String(observability.AttrClient, c.config.Name),
		attribute.String(observability.AttrMethod, string(req.Method)))
	defer span.End()

	if c.metrics != nil {
		c.metrics.CallStarted(ctx)
	}
	start := time.Now()

	resp, requestID, err := c.roundTrip(ctx, req)
	elapsed := time.Since(start)

	fields := logger.Fields(
		logger.FieldMethod, string(req.Method),
		logger.FieldURL, c.rootURL+req.Path,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	if requestID != "" {
		fields[logger.FieldRequestID] = requestID
		span.SetAttributes(attribute.String(observability.AttrRequestID, requestID))
	}
	if resp != nil {
		fields[logger.FieldStatus] = resp.StatusCode
		span.SetAttributes(attribute.Int(observability.AttrStatusCode, resp.StatusCode))
	}

	outcome := "ok"
	if err != nil {
		outcome = kindOf(err).String()
		span.SetAttributes(attribute.String(observability.AttrErrorKind, outcome))
		observability.SetSpanError(ctx, err)
		c.log.Debug("call failed", logger.MergeWithError(fields, err))
	} else {
		c.log.Debug("call completed", fields)
	}
	if c.metrics != nil {
		c.metrics.CallFinished(ctx, c.config.Name, string(req.Method), outcome, elapsed)
	}
	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, req Request) (*Response, string, error) {
	httpReq, err := c.BuildRequest(ctx, req)
	if err != nil {
		return nil, "", err
	}
	requestID := httpReq.Header.Get(HeaderRequestID)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, requestID, transportFailure(ctx, "send request", err)
	}
	resp, err := c.Interpret(httpResp)
	return resp, requestID, err
}

// Call runs req and decodes the body as shape. Unknown shapes fail before
// anything is sent.
func (c *Client) Call(ctx context.Context, req Request, shape Shape) (any, error) {
	if !shape.Valid() {
		return nil, NewUnsupportedShapeError(shape)
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Decode(shape)
}

// Bytes runs req and returns the raw body.
func (c *Client) Bytes(ctx context.Context, req Request) ([]byte, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Bytes(), nil
}

// Text runs req and returns the body decoded as text.
func (c *Client) Text(ctx context.Context, req Request) (string, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text()
}

// JSON runs req and returns the body as a generic JSON value.
func (c *Client) JSON(ctx context.Context, req Request) (any, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.JSON()
}

// JSONObject runs req and returns the body as a JSON object.
func (c *Client) JSONObject(ctx context.Context, req Request) (map[string]any, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.JSONObject()
}

// JSONArray runs req and returns the body as a JSON array.
func (c *Client) JSONArray(ctx context.Context, req Request) ([]any, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.JSONArray()
}

// XML runs req and returns the body as an XML document.
func (c *Client) XML(ctx context.Context, req Request) (*xmlquery.Node, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.XML()
}

// Get sends a GET to path.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(MethodGet, path, nil, opts...))
}

// Post sends body to path with POST. The content kind is auto unless an
// option says otherwise.
func (c *Client) Post(ctx context.Context, path string, body Payload, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(MethodPost, path, body, opts...))
}

// Put sends body to path with PUT.
func (c *Client) Put(ctx context.Context, path string, body Payload, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(MethodPut, path, body, opts...))
}

// Delete sends a DELETE to path. body may be nil.
func (c *Client) Delete(ctx context.Context, path string, body Payload, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(MethodDelete, path, body, opts...))
}

func (c *Client) String() string {
	return fmt.Sprintf("apiclient.Client(%s %s)", c.config.Name, c.rootURL)
}
