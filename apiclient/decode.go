package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Shape is the form a response body is decoded into.
type Shape int

const (
	// ShapeBytes is the raw body.
	ShapeBytes Shape = iota + 1
	// ShapeText is the body decoded with the client's charset.
	ShapeText
	// ShapeJSON is any JSON value.
	ShapeJSON
	// ShapeJSONObject is a JSON object, map[string]any.
	ShapeJSONObject
	// ShapeJSONArray is a JSON array, []any.
	ShapeJSONArray
	// ShapeXML is an *xmlquery.Node document.
	ShapeXML
)

var shapeNames = map[Shape]string{
	ShapeBytes:      "bytes",
	ShapeText:       "text",
	ShapeJSON:       "json",
	ShapeJSONObject: "json_object",
	ShapeJSONArray:  "json_array",
	ShapeXML:        "xml",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid reports whether s is a supported shape.
func (s Shape) Valid() bool {
	_, ok := shapeNames[s]
	return ok
}

// ParseShape looks a shape up by name.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "object":
		n = "json_object"
	case "array":
		n = "json_array"
	}
	for s, sn := range shapeNames {
		if sn == n {
			return s, nil
		}
	}
	return 0, &Error{Kind: KindUnsupportedShape, Message: fmt.Sprintf("response shape %q is not supported", name)}
}

// Decode projects the body into shape. An empty body yields nil for every
// shape but ShapeBytes, which yields an empty slice.
func (r *Response) Decode(shape Shape) (any, error) {
	if !shape.Valid() {
		return nil, NewUnsupportedShapeError(shape)
	}
	if shape == ShapeBytes {
		return r.Bytes(), nil
	}
	if len(r.Body) == 0 {
		return nil, nil
	}

	var (
		v   any
		err error
	)
	switch shape {
	case ShapeText:
		v, err = r.Text()
	case ShapeJSON:
		v, err = r.JSON()
	case ShapeJSONObject:
		v, err = r.JSONObject()
	case ShapeJSONArray:
		v, err = r.JSONArray()
	case ShapeXML:
		v, err = r.XML()
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Bytes returns the raw body, never nil.
func (r *Response) Bytes() []byte {
	if r.Body == nil {
		return []byte{}
	}
	return r.Body
}

// Text returns the body decoded with the client's charset.
func (r *Response) Text() (string, error) {
	if len(r.Body) == 0 {
		return "", nil
	}
	s, err := decodeText(r.encoding(), r.Body)
	if err != nil {
		return "", NewParseError(ShapeText, err)
	}
	return s, nil
}

// JSON returns the body as a generic JSON value, nil when empty.
func (r *Response) JSON() (any, error) {
	var v any
	if err := r.unmarshal(ShapeJSON, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONObject returns the body as a JSON object, nil when empty.
func (r *Response) JSONObject() (map[string]any, error) {
	var v map[string]any
	if err := r.unmarshal(ShapeJSONObject, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONArray returns the body as a JSON array, nil when empty.
func (r *Response) JSONArray() ([]any, error) {
	var v []any
	if err := r.unmarshal(ShapeJSONArray, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// XML parses the body into a document, nil when empty. The document must
// have a root element.
func (r *Response) XML() (*xmlquery.Node, error) {
	if len(r.Body) == 0 {
		return nil, nil
	}
	text, err := r.Text()
	if err != nil {
		return nil, err
	}
	doc, err := xmlquery.ParseWithOptions(strings.NewReader(text), xmlParserOptions)
	if err != nil {
		return nil, NewParseError(ShapeXML, err)
	}
	if rootElement(doc) == nil {
		return nil, NewParseError(ShapeXML, errors.New("document has no root element"))
	}
	return doc, nil
}

// DecodeInto unmarshals a JSON body into a new T, nil when empty.
func DecodeInto[T any](r *Response) (*T, error) {
	if len(r.Body) == 0 {
		return nil, nil
	}
	v := new(T)
	if err := r.unmarshal(ShapeJSON, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Response) unmarshal(shape Shape, dst any) error {
	if len(r.Body) == 0 {
		return nil
	}
	text, err := r.Text()
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return NewParseError(shape, err)
	}
	return nil
}

// The body is already decoded to UTF-8 by the time the parser sees it, so
// encoding declarations are ignored.
var xmlParserOptions = xmlquery.ParserOptions{
	Decoder: &xmlquery.DecoderOptions{
		Strict: true,
		CharsetReader: func(_ string, input io.Reader) (io.Reader, error) {
			return input, nil
		},
	},
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}
