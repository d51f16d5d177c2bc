package auth

import (
	"errors"
	"net/http"

	"github.com/kbukum/apikit/apiclient"
)

// DefaultAPIKeyName is the header used by APIKeyHeader when name is empty.
const DefaultAPIKeyName = "X-API-Key"

// Bearer sends a fixed token in the Authorization header.
type Bearer struct {
	Token string
}

func (b Bearer) InjectHeaders(req *http.Request) error {
	if b.Token == "" {
		return errors.New("auth: bearer token is empty")
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Basic sends HTTP basic credentials.
type Basic struct {
	Username string
	Password string
}

func (b Basic) InjectHeaders(req *http.Request) error {
	if b.Username == "" {
		return errors.New("auth: basic username is empty")
	}
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// APIKey sends a static key either as a header or as a query parameter.
type APIKey struct {
	Name    string
	Key     string
	InQuery bool
}

// APIKeyHeader sends key in the named header.
func APIKeyHeader(name, key string) *APIKey {
	if name == "" {
		name = DefaultAPIKeyName
	}
	return &APIKey{Name: name, Key: key}
}

// APIKeyQuery appends key as the named query parameter.
func APIKeyQuery(name, key string) *APIKey {
	return &APIKey{Name: name, Key: key, InQuery: true}
}

func (a *APIKey) InjectHeaders(req *http.Request) error {
	if a.InQuery {
		return nil
	}
	if a.Key == "" {
		return errors.New("auth: api key is empty")
	}
	req.Header.Set(a.Name, a.Key)
	return nil
}

func (a *APIKey) InjectQuery(q *apiclient.Query) error {
	if !a.InQuery {
		return nil
	}
	if a.Name == "" || a.Key == "" {
		return errors.New("auth: api key name and value are required")
	}
	q.Add(a.Name, a.Key)
	return nil
}
