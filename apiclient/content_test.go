package apiclient

import (
	"net/url"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
)

func TestParseMethod(t *testing.T) {
	for _, in := range []string{"get", "PUT", " post ", "Delete"} {
		if _, err := ParseMethod(in); err != nil {
			t.Errorf("ParseMethod(%q): %v", in, err)
		}
	}
	for _, in := range []string{"PATCH", "HEAD", ""} {
		if _, err := ParseMethod(in); !IsArgument(err) {
			t.Errorf("ParseMethod(%q) should be an argument error, got %v", in, err)
		}
	}
}

func TestParseContentKind(t *testing.T) {
	tests := []struct {
		in   string
		want ContentKind
	}{
		{"", ContentUndefined},
		{"undefined", ContentUndefined},
		{"Auto", ContentAuto},
		{"json", ContentJSON},
		{"urlencoded", ContentURLEncoded},
		{"form", ContentURLEncoded},
		{"XML", ContentXML},
	}
	for _, tt := range tests {
		got, err := ParseContentKind(tt.in)
		if err != nil {
			t.Errorf("ParseContentKind(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseContentKind(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseContentKind("yaml"); !IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
}

func TestContentKindMIME(t *testing.T) {
	tests := map[ContentKind]string{
		ContentUndefined:  "",
		ContentAuto:       "",
		ContentJSON:       "application/json",
		ContentURLEncoded: "application/x-www-form-urlencoded",
		ContentXML:        "application/xml",
	}
	for k, want := range tests {
		if got := k.MIME(); got != want {
			t.Errorf("%s.MIME() = %q, want %q", k, got, want)
		}
	}
}

func TestResolveContentKind(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader("<a/>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		requested ContentKind
		fallback  ContentKind
		payload   Payload
		want      ContentKind
	}{
		{"undefined stays undefined", ContentUndefined, ContentJSON, JSON(1), ContentUndefined},
		{"explicit wins over payload", ContentXML, ContentUndefined, JSON(1), ContentXML},
		{"auto uses default", ContentAuto, ContentURLEncoded, JSON(1), ContentURLEncoded},
		{"auto json payload", ContentAuto, ContentUndefined, JSON(map[string]int{"a": 1}), ContentJSON},
		{"auto xml payload", ContentAuto, ContentUndefined, XML(doc), ContentXML},
		{"auto form payload", ContentAuto, ContentUndefined, Form(url.Values{"a": {"1"}}), ContentURLEncoded},
		{"auto text payload", ContentAuto, ContentUndefined, Text("hi"), ContentUndefined},
		{"auto bytes payload", ContentAuto, ContentUndefined, Bytes([]byte{1}), ContentUndefined},
		{"auto object payload", ContentAuto, ContentUndefined, Object(42), ContentUndefined},
		{"auto nil payload", ContentAuto, ContentUndefined, nil, ContentUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveContentKind(tt.requested, tt.fallback, tt.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveContentKindUnknown(t *testing.T) {
	if _, err := ResolveContentKind("yaml", ContentUndefined, nil); !IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
}
