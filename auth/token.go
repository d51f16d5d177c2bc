package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/apikit/apiclient"
)

// DefaultTokenField is the response field TokenExchange reads by default.
const DefaultTokenField = "access_token"

// TokenExchange signs in by posting Credentials to Path and reading a token
// from the JSON object returned. Later calls carry it as a bearer token.
//
// When the token is a JWT its expiry and subject are read without
// verifying the signature; the client cannot hold the issuer's key.
type TokenExchange struct {
	Path        string
	Credentials apiclient.Payload
	// Content overrides the content kind of the sign-in body.
	Content apiclient.ContentKind
	// TokenField defaults to DefaultTokenField.
	TokenField string

	mu        sync.RWMutex
	token     string
	subject   string
	expiresAt time.Time
}

func (t *TokenExchange) SignIn(ctx context.Context, c *apiclient.Client) error {
	if t.Path == "" {
		return errors.New("auth: token exchange path is empty")
	}
	var opts []apiclient.RequestOption
	if t.Content != apiclient.ContentUndefined {
		opts = append(opts, apiclient.WithContent(t.Content))
	}

	obj, err := c.JSONObject(ctx, apiclient.NewRequest(apiclient.MethodPost, t.Path, t.Credentials, opts...))
	if err != nil {
		return err
	}

	field := t.TokenField
	if field == "" {
		field = DefaultTokenField
	}
	token, _ := obj[field].(string)
	if token == "" {
		return fmt.Errorf("auth: sign-in response has no %q", field)
	}

	var claims jwt.RegisteredClaims
	subject, expiresAt := "", time.Time{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil {
		subject = claims.Subject
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	t.mu.Lock()
	t.token, t.subject, t.expiresAt = token, subject, expiresAt
	t.mu.Unlock()
	return nil
}

func (t *TokenExchange) InjectHeaders(req *http.Request) error {
	t.mu.RLock()
	token := t.token
	t.mu.RUnlock()
	if token == "" {
		return errors.New("auth: no token, sign-in has not completed")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// Token returns the token obtained by the last sign-in.
func (t *TokenExchange) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// Subject returns the "sub" claim of a JWT token, or "".
func (t *TokenExchange) Subject() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.subject
}

// ExpiresAt returns the "exp" claim of a JWT token, or the zero time.
func (t *TokenExchange) ExpiresAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.expiresAt
}
