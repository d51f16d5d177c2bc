package apiclient

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the character encoding used when none is configured.
const DefaultEncoding = "utf-8"

// lookupEncoding resolves an IANA or WHATWG charset name.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported character encoding %q", name)
}

func encodeText(enc encoding.Encoding, s string) ([]byte, error) {
	out, err := enc.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func decodeText(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
