package apiclient

import (
	"context"
	"net/http"
)

// Authenticator establishes a session. SignIn runs once, lazily, before the
// first call; calls it makes through c are sent without credentials.
type Authenticator interface {
	SignIn(ctx context.Context, c *Client) error
}

// HeaderInjector attaches credentials to the headers of a signed-in call.
type HeaderInjector interface {
	InjectHeaders(req *http.Request) error
}

// QueryInjector appends credentials to the query of a signed-in call.
type QueryInjector interface {
	InjectQuery(q *Query) error
}

// SignInFunc adapts a function to Authenticator.
type SignInFunc func(ctx context.Context, c *Client) error

func (f SignInFunc) SignIn(ctx context.Context, c *Client) error { return f(ctx, c) }

// HeaderFunc adapts a function to HeaderInjector.
type HeaderFunc func(req *http.Request) error

func (f HeaderFunc) InjectHeaders(req *http.Request) error { return f(req) }

// QueryFunc adapts a function to QueryInjector.
type QueryFunc func(q *Query) error

func (f QueryFunc) InjectQuery(q *Query) error { return f(q) }
