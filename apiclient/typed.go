package apiclient

import "context"

// TypedResponse is a successful reply with its JSON body decoded into T.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	// Data is nil when the body was empty.
	Data *T
}

// Get sends a GET and decodes the JSON reply into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, NewRequest(MethodGet, path, nil, opts...))
}

// Post sends body with POST and decodes the JSON reply into T.
func Post[T any](ctx context.Context, c *Client, path string, body Payload, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, NewRequest(MethodPost, path, body, opts...))
}

// Put sends body with PUT and decodes the JSON reply into T.
func Put[T any](ctx context.Context, c *Client, path string, body Payload, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, NewRequest(MethodPut, path, body, opts...))
}

// Delete sends a DELETE and decodes the JSON reply into T.
func Delete[T any](ctx context.Context, c *Client, path string, body Payload, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, NewRequest(MethodDelete, path, body, opts...))
}

func doTyped[T any](ctx context.Context, c *Client, req Request) (*TypedResponse[T], error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := DecodeInto[T](resp)
	if err != nil {
		return nil, err
	}
	return &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Data:       data,
	}, nil
}
