package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/kbukum/apikit/apiclient"
)

func buildRequest(opts *options, path string) (apiclient.Request, apiclient.Shape, error) {
	method, err := apiclient.ParseMethod(opts.method)
	if err != nil {
		return apiclient.Request{}, 0, err
	}
	shape, err := apiclient.ParseShape(opts.shape)
	if err != nil {
		return apiclient.Request{}, 0, err
	}

	body, err := readBody(opts)
	if err != nil {
		return apiclient.Request{}, 0, err
	}
	payload, err := buildPayload(opts.as, body)
	if err != nil {
		return apiclient.Request{}, 0, err
	}

	var reqOpts []apiclient.RequestOption
	if opts.content != "" {
		kind, err := apiclient.ParseContentKind(opts.content)
		if err != nil {
			return apiclient.Request{}, 0, err
		}
		reqOpts = append(reqOpts, apiclient.WithContent(kind))
	}
	for _, h := range opts.headers {
		name, value, err := splitHeader(h)
		if err != nil {
			return apiclient.Request{}, 0, err
		}
		reqOpts = append(reqOpts, apiclient.WithHeader(name, value))
	}
	for _, q := range opts.query {
		key, value, _ := strings.Cut(q, "=")
		reqOpts = append(reqOpts, apiclient.WithQueryParam(key, value))
	}
	return apiclient.NewRequest(method, path, payload, reqOpts...), shape, nil
}

func readBody(opts *options) (*string, error) {
	switch {
	case opts.data != "" && opts.dataFile != "":
		return nil, fmt.Errorf("--data and --data-file are mutually exclusive")
	case opts.dataFile != "":
		b, err := os.ReadFile(opts.dataFile)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		s := string(b)
		return &s, nil
	case opts.data != "":
		return &opts.data, nil
	}
	return nil, nil
}

// buildPayload wraps body according to --as. No body means no payload.
func buildPayload(as string, body *string) (apiclient.Payload, error) {
	if body == nil {
		return nil, nil
	}
	switch strings.ToLower(as) {
	case "", "text":
		return apiclient.Text(*body), nil
	case "bytes":
		return apiclient.Bytes([]byte(*body)), nil
	case "json":
		return apiclient.JSON(json.RawMessage(*body)), nil
	case "form":
		values, err := url.ParseQuery(*body)
		if err != nil {
			return nil, fmt.Errorf("parse form body: %w", err)
		}
		return apiclient.Form(values), nil
	case "xml":
		doc, err := xmlquery.Parse(strings.NewReader(*body))
		if err != nil {
			return nil, fmt.Errorf("parse xml body: %w", err)
		}
		return apiclient.XML(doc), nil
	}
	return nil, fmt.Errorf("unknown body kind %q", as)
}

func printResult(w io.Writer, shape apiclient.Shape, result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case []byte:
		_, err := w.Write(v)
		return err
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	case *xmlquery.Node:
		_, err := fmt.Fprintln(w, v.OutputXML(true))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("print %s result: %w", shape, err)
	}
	return nil
}
