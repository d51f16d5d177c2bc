package apiclient

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Response is a received reply with its body fully read.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte

	enc encoding.Encoding
}

// NewResponse wraps an already-read reply. Text shapes decode body with
// enc; a nil enc means UTF-8.
func NewResponse(statusCode int, headers map[string]string, body []byte, enc encoding.Encoding) *Response {
	return &Response{StatusCode: statusCode, Headers: headers, Body: body, enc: enc}
}

// IsSuccess reports whether status counts as success: 200 or 201 only.
func IsSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// Interpret reads and closes resp.Body and applies the status rule. For any
// status other than 200 or 201 it returns the *Response together with a
// transport error holding the body text.
func (c *Client) Interpret(resp *http.Response) (*Response, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ctx := context.Background()
		if resp.Request != nil {
			ctx = resp.Request.Context()
		}
		return nil, transportFailure(ctx, "read response body", err)
	}

	enc, _ := c.settings()
	result := NewResponse(resp.StatusCode, flattenHeaders(resp.Header), body, enc)
	if !IsSuccess(resp.StatusCode) {
		text, err := decodeText(result.encoding(), body)
		if err != nil {
			text = string(body)
		}
		return result, NewTransportError(resp.StatusCode, text)
	}
	return result, nil
}

func (r *Response) encoding() encoding.Encoding {
	if r.enc == nil {
		return unicode.UTF8
	}
	return r.enc
}

// flattenHeaders keeps the first value of each header.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
