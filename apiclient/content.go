package apiclient

import (
	"net/http"
	"strings"
)

// Method is an HTTP method the client may send.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPut    Method = http.MethodPut
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPut, MethodPost, MethodDelete:
		return true
	}
	return false
}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", NewArgumentError("unknown request method %q", s)
	}
	return m, nil
}

// ContentKind selects the Content-Type of a request.
type ContentKind string

const (
	// ContentUndefined sends no Content-Type header.
	ContentUndefined ContentKind = ""
	// ContentAuto uses the client default, or the payload's own kind when
	// the default is undefined.
	ContentAuto       ContentKind = "auto"
	ContentJSON       ContentKind = "json"
	ContentURLEncoded ContentKind = "urlencoded"
	ContentXML        ContentKind = "xml"
)

// MIME types sent for each concrete content kind.
const (
	MIMEJSON       = "application/json"
	MIMEURLEncoded = "application/x-www-form-urlencoded"
	MIMEXML        = "application/xml"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	switch k {
	case ContentUndefined, ContentAuto, ContentJSON, ContentURLEncoded, ContentXML:
		return true
	}
	return false
}

func (k ContentKind) String() string {
	if k == ContentUndefined {
		return "undefined"
	}
	return string(k)
}

// MIME returns the Content-Type value for k, empty for undefined and auto.
func (k ContentKind) MIME() string {
	switch k {
	case ContentJSON:
		return MIMEJSON
	case ContentURLEncoded:
		return MIMEURLEncoded
	case ContentXML:
		return MIMEXML
	default:
		return ""
	}
}

// ParseContentKind parses a content kind name case-insensitively.
// "undefined" and "none" both mean ContentUndefined.
func ParseContentKind(s string) (ContentKind, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "undefined", "none":
		return ContentUndefined, nil
	case "form", "url_encoded", "x-www-form-urlencoded":
		return ContentURLEncoded, nil
	default:
		k := ContentKind(v)
		if !k.Valid() {
			return "", NewArgumentError("unknown content kind %q", s)
		}
		return k, nil
	}
}

// ResolveContentKind picks the content kind a request goes out with.
// An explicit kind wins. Auto falls back to fallback, then to the payload's
// structural kind. The result is never ContentAuto.
func ResolveContentKind(requested, fallback ContentKind, payload Payload) (ContentKind, error) {
	if !requested.Valid() {
		return "", NewArgumentError("unknown content kind %q", string(requested))
	}
	if requested != ContentAuto {
		return requested, nil
	}
	if fallback != ContentUndefined && fallback != ContentAuto {
		if !fallback.Valid() {
			return "", NewArgumentError("unknown default content kind %q", string(fallback))
		}
		return fallback, nil
	}
	if payload == nil {
		return ContentUndefined, nil
	}
	return payload.Kind(), nil
}
