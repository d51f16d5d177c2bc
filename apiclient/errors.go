package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindArgument is an invalid call or configuration, caught before any I/O.
	KindArgument ErrorKind = iota + 1
	// KindTransport is a response whose status is neither 200 nor 201.
	KindTransport
	// KindUnsupportedShape is a decode target the client does not know.
	KindUnsupportedShape
	// KindParse is a body that does not match the requested shape.
	KindParse
	// KindConnection is a failure to send the request or read the response.
	KindConnection
	// KindTimeout is a call abandoned because its context or deadline ended.
	KindTimeout
	// KindSignIn is a failed sign-in or credential injection.
	KindSignIn
)

func (k ErrorKind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindTransport:
		return "transport"
	case KindUnsupportedShape:
		return "unsupported_shape"
	case KindParse:
		return "parse"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindSignIn:
		return "sign_in"
	default:
		return "unknown"
	}
}

// ErrorCode sub-classifies transport errors by status.
type ErrorCode string

const (
	CodeAuth       ErrorCode = "auth"
	CodeNotFound   ErrorCode = "not_found"
	CodeRateLimit  ErrorCode = "rate_limit"
	CodeValidation ErrorCode = "validation"
	CodeServer     ErrorCode = "server"
	CodeUnexpected ErrorCode = "unexpected"
)

// Error is the error type returned by every Client operation.
type Error struct {
	Kind ErrorKind
	// Code is set for transport errors only.
	Code ErrorCode
	// StatusCode is set for transport errors only.
	StatusCode int
	Message    string
	// Body is the response body decoded as text, for transport errors.
	Body string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("apiclient %s (HTTP %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("apiclient %s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewArgumentError reports an invalid call or configuration.
func NewArgumentError(format string, args ...any) *Error {
	return &Error{Kind: KindArgument, Message: fmt.Sprintf(format, args...)}
}

// NewTransportError reports a non-success status with the response body.
func NewTransportError(statusCode int, body string) *Error {
	msg := body
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &Error{
		Kind:       KindTransport,
		Code:       ClassifyStatusCode(statusCode),
		StatusCode: statusCode,
		Message:    msg,
		Body:       body,
	}
}

// NewUnsupportedShapeError reports an unknown decode target.
func NewUnsupportedShapeError(shape Shape) *Error {
	return &Error{Kind: KindUnsupportedShape, Message: fmt.Sprintf("response shape %s is not supported", shape)}
}

// NewParseError reports a body that could not be decoded as shape.
func NewParseError(shape Shape, err error) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf("decode %s", shape), Err: err}
}

// NewConnectionError reports a failed send or body read.
func NewConnectionError(op string, err error) *Error {
	return &Error{Kind: KindConnection, Message: op, Err: err}
}

// NewTimeoutError reports a call cut short by its context or deadline.
func NewTimeoutError(op string, err error) *Error {
	return &Error{Kind: KindTimeout, Message: op, Err: err}
}

// NewSignInError reports a failed sign-in or credential injection.
func NewSignInError(op string, err error) *Error {
	return &Error{Kind: KindSignIn, Message: op, Err: err}
}

// ClassifyStatusCode maps a non-success status to an ErrorCode.
func ClassifyStatusCode(statusCode int) ErrorCode {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return CodeAuth
	case statusCode == http.StatusNotFound:
		return CodeNotFound
	case statusCode == http.StatusTooManyRequests:
		return CodeRateLimit
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return CodeValidation
	case statusCode >= 500:
		return CodeServer
	default:
		return CodeUnexpected
	}
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsArgument reports whether err is an argument error.
func IsArgument(err error) bool { return kindOf(err) == KindArgument }

// IsTransport reports whether err is a non-success response.
func IsTransport(err error) bool { return kindOf(err) == KindTransport }

// IsUnsupportedShape reports whether err is an unknown decode target.
func IsUnsupportedShape(err error) bool { return kindOf(err) == KindUnsupportedShape }

// IsParse reports whether err is a decode failure.
func IsParse(err error) bool { return kindOf(err) == KindParse }

// IsConnection reports whether err is a send or read failure.
func IsConnection(err error) bool { return kindOf(err) == KindConnection }

// IsTimeout reports whether err is a timeout or cancellation.
func IsTimeout(err error) bool { return kindOf(err) == KindTimeout }

// IsSignIn reports whether err is a sign-in or credential failure.
func IsSignIn(err error) bool { return kindOf(err) == KindSignIn }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport && e.Code == CodeNotFound
}

// IsAuth reports whether err is a 401 or 403 response.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport && e.Code == CodeAuth
}

// StatusCode returns the HTTP status of the first transport error in the
// chain, so a sign-in failure caused by a rejected login reports it too.
func StatusCode(err error) int {
	var e *Error
	for errors.As(err, &e) {
		if e.StatusCode != 0 {
			return e.StatusCode
		}
		err = e.Err
	}
	return 0
}
