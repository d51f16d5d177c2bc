package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/encoding"
)

// Payload is a request body in one of the accepted input shapes. Build one
// with Bytes, Text, JSON, XML, Form or Object.
type Payload interface {
	// Kind is the content kind the payload implies, ContentUndefined when
	// it implies none.
	Kind() ContentKind

	serialize(enc encoding.Encoding) ([]byte, error)
}

type rawPayload []byte

// Bytes sends b unchanged.
func Bytes(b []byte) Payload { return rawPayload(b) }

func (rawPayload) Kind() ContentKind { return ContentUndefined }

func (p rawPayload) serialize(encoding.Encoding) ([]byte, error) { return p, nil }

type textPayload string

// Text sends s in the client's character encoding.
func Text(s string) Payload { return textPayload(s) }

func (textPayload) Kind() ContentKind { return ContentUndefined }

func (p textPayload) serialize(enc encoding.Encoding) ([]byte, error) {
	return encodeText(enc, string(p))
}

type jsonPayload struct{ v any }

// JSON sends v as compact JSON. v may be a json.RawMessage, a map, a slice
// or any value encoding/json can marshal.
func JSON(v any) Payload { return jsonPayload{v: v} }

func (jsonPayload) Kind() ContentKind { return ContentJSON }

func (p jsonPayload) serialize(enc encoding.Encoding) ([]byte, error) {
	if raw, ok := p.v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return encodeText(enc, buf.String())
	}

	var buf bytes.Buffer
	e := json.NewEncoder(&buf)
	e.SetEscapeHTML(false)
	if err := e.Encode(p.v); err != nil {
		return nil, err
	}
	return encodeText(enc, string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))))
}

type xmlPayload struct{ doc *xmlquery.Node }

// XML sends doc without formatting whitespace. Whitespace-only text nodes
// are dropped unless xml:space="preserve" applies; other text is sent as
// is. A nil doc sends no body.
func XML(doc *xmlquery.Node) Payload { return xmlPayload{doc: doc} }

func (xmlPayload) Kind() ContentKind { return ContentXML }

func (p xmlPayload) serialize(enc encoding.Encoding) ([]byte, error) {
	if p.doc == nil {
		return nil, nil
	}
	return encodeText(enc, compactXML(p.doc, false).OutputXMLWithOptions(xmlquery.WithOutputSelf()))
}

// compactXML copies n without the whitespace-only text nodes that are
// not under xml:space="preserve". The caller's tree is left untouched.
func compactXML(n *xmlquery.Node, preserve bool) *xmlquery.Node {
	switch n.SelectAttr("xml:space") {
	case "preserve":
		preserve = true
	case "default":
		preserve = false
	}
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
		Attr:         append([]xmlquery.Attr(nil), n.Attr...),
		ProcInst:     n.ProcInst,
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode && !preserve && strings.TrimSpace(child.Data) == "" {
			continue
		}
		xmlquery.AddChild(c, compactXML(child, preserve))
	}
	return c
}

type formPayload url.Values

// Form sends values URL-encoded, keys sorted.
func Form(values url.Values) Payload { return formPayload(values) }

func (formPayload) Kind() ContentKind { return ContentURLEncoded }

func (p formPayload) serialize(enc encoding.Encoding) ([]byte, error) {
	return encodeText(enc, url.Values(p).Encode())
}

type objectPayload struct{ v any }

// Object sends the textual form of v: its String method when it has one,
// otherwise fmt's %v. A nil v sends no body.
func Object(v any) Payload { return objectPayload{v: v} }

func (objectPayload) Kind() ContentKind { return ContentUndefined }

func (p objectPayload) serialize(enc encoding.Encoding) ([]byte, error) {
	if p.v == nil {
		return nil, nil
	}
	return encodeText(enc, fmt.Sprint(p.v))
}

// serializePayload renders p with enc. A nil payload is an empty body.
func serializePayload(p Payload, enc encoding.Encoding) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	body, err := p.serialize(enc)
	if err != nil {
		return nil, NewArgumentError("serialize %T payload: %v", p, err)
	}
	return body, nil
}
