package apiclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/apikit/observability"
)

// HeaderRequestID carries a fresh UUID on every call.
const HeaderRequestID = "X-Request-ID"

// Request describes one call. Path is appended to the root URL unchanged.
type Request struct {
	Method  Method
	Path    string
	Payload Payload
	Content ContentKind
	// Query holds the caller's own parameters. Query credentials follow them.
	Query   *Query
	Headers map[string]string
}

// RequestOption adjusts a Request built by NewRequest or a verb method.
type RequestOption func(*Request)

// WithHeader sets a header on the call.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithContent overrides the content kind.
func WithContent(k ContentKind) RequestOption {
	return func(r *Request) { r.Content = k }
}

// WithQueryParam appends an escaped query parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = &Query{}
		}
		r.Query.Add(key, value)
	}
}

// NewRequest builds a Request. A non-nil body gets ContentAuto.
func NewRequest(method Method, path string, body Payload, opts ...RequestOption) Request {
	r := Request{Method: method, Path: path, Payload: body}
	if body != nil {
		r.Content = ContentAuto
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// BuildRequest validates and serializes req, signs in if needed, and
// returns the *http.Request with every credential applied. Argument errors
// are reported before the sign-in hook or the network is touched.
func (c *Client) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	if !req.Method.Valid() {
		return nil, NewArgumentError("unknown request method %q", string(req.Method))
	}
	enc, fallback := c.settings()
	kind, err := ResolveContentKind(req.Content, fallback, req.Payload)
	if err != nil {
		return nil, err
	}
	body, err := serializePayload(req.Payload, enc)
	if err != nil {
		return nil, err
	}
	if req.Method == MethodGet && len(body) > 0 {
		return nil, NewArgumentError("GET cannot carry a body; put the data in the query string")
	}

	signedIn, err := c.latch.Ensure(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError("sign in", err)
		}
		return nil, NewSignInError("sign in", err)
	}

	path := req.Query.AppendTo(req.Path)
	if signedIn && c.queryCreds != nil {
		var q Query
		if err := c.queryCreds.InjectQuery(&q); err != nil {
			return nil, NewSignInError("inject query credentials", err)
		}
		path = q.AppendTo(path)
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), c.rootURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindArgument, Message: "create request", Err: err}
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if mime := kind.MIME(); mime != "" {
		httpReq.Header.Set("Content-Type", mime)
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}
	observability.InjectHeaders(ctx, propagation.HeaderCarrier(httpReq.Header))

	if signedIn && c.headerCreds != nil {
		if err := c.headerCreds.InjectHeaders(httpReq); err != nil {
			return nil, NewSignInError("inject header credentials", err)
		}
	}
	return httpReq, nil
}

// transportFailure classifies an error raised before or while reading a
// response.
func transportFailure(ctx context.Context, op string, err error) *Error {
	var netErr net.Error
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTimeoutError(op, err)
	}
	return NewConnectionError(op, err)
}
