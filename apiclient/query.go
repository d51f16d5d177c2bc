package apiclient

import (
	"net/url"
	"strings"
)

// QueryPair is one query parameter, already escaped for the URL.
type QueryPair struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. The zero value is empty
// and ready to use.
type Query struct {
	pairs []QueryPair
}

// Add appends key=value, percent-encoding both.
func (q *Query) Add(key, value string) {
	q.pairs = append(q.pairs, QueryPair{Key: url.QueryEscape(key), Value: url.QueryEscape(value)})
}

// AddRaw appends key=value exactly as given.
func (q *Query) AddRaw(key, value string) {
	q.pairs = append(q.pairs, QueryPair{Key: key, Value: value})
}

// Len returns the number of pairs.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.pairs)
}

// Pairs returns a copy of the pairs in insertion order.
func (q *Query) Pairs() []QueryPair {
	if q == nil {
		return nil
	}
	return append([]QueryPair(nil), q.pairs...)
}

// Encode joins the pairs as key=value&key=value.
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// AppendTo appends the pairs to path, starting with '?' or, when path
// already has a query, '&'.
func (q *Query) AppendTo(path string) string {
	if q.Len() == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}
