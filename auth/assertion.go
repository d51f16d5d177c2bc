package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAssertionTTL is the lifetime of a JWTAssertion token.
const DefaultAssertionTTL = 5 * time.Minute

// JWTAssertion signs a short-lived HS256 token for every call and sends it
// as a bearer token.
type JWTAssertion struct {
	Issuer   string
	Subject  string
	Audience []string
	Secret   []byte
	// TTL defaults to DefaultAssertionTTL.
	TTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Sign returns a signed assertion.
func (a *JWTAssertion) Sign() (string, error) {
	if len(a.Secret) == 0 {
		return "", errors.New("auth: assertion secret is empty")
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	ttl := a.TTL
	if ttl <= 0 {
		ttl = DefaultAssertionTTL
	}

	issued := now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.Issuer,
		Subject:   a.Subject,
		Audience:  jwt.ClaimStrings(a.Audience),
		IssuedAt:  jwt.NewNumericDate(issued),
		NotBefore: jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign assertion: %w", err)
	}
	return signed, nil
}

func (a *JWTAssertion) InjectHeaders(req *http.Request) error {
	token, err := a.Sign()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
