package auth

import (
	"testing"
	"time"

	"github.com/kbukum/apikit/apiclient"
)

func TestConfigBuild(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want any
	}{
		{"none", Config{}, nil},
		{"explicit none", Config{Type: TypeNone}, nil},
		{"bearer", Config{Type: TypeBearer, Token: "t"}, Bearer{}},
		{"basic", Config{Type: TypeBasic, Username: "u"}, Basic{}},
		{"api key", Config{Type: TypeAPIKey, Key: "k"}, &APIKey{}},
		{"token exchange", Config{Type: TypeTokenExchange, Path: "/token"}, &TokenExchange{}},
		{"jwt assertion", Config{Type: TypeJWTAssertion, Secret: "s", TTL: time.Minute}, &JWTAssertion{}},
		{"query signer", Config{Type: TypeQuerySigner, Key: "k", Secret: "s"}, &QuerySigner{}},
		{"form login", Config{Type: TypeFormLogin, Path: "/login"}, &FormLogin{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch tt.want.(type) {
			case nil:
				if got != nil {
					t.Errorf("got %T, want nil", got)
				}
			case Bearer:
				if _, ok := got.(Bearer); !ok {
					t.Errorf("got %T", got)
				}
			case Basic:
				if _, ok := got.(Basic); !ok {
					t.Errorf("got %T", got)
				}
			case *APIKey:
				if k, ok := got.(*APIKey); !ok || k.Name != DefaultAPIKeyName {
					t.Errorf("got %#v", got)
				}
			case *TokenExchange:
				if _, ok := got.(*TokenExchange); !ok {
					t.Errorf("got %T", got)
				}
			case *JWTAssertion:
				if a, ok := got.(*JWTAssertion); !ok || a.TTL != time.Minute {
					t.Errorf("got %#v", got)
				}
			case *QuerySigner:
				if _, ok := got.(*QuerySigner); !ok {
					t.Errorf("got %T", got)
				}
			case *FormLogin:
				if _, ok := got.(*FormLogin); !ok {
					t.Errorf("got %T", got)
				}
			}
		})
	}
}

func TestConfigAPIKeyInQuery(t *testing.T) {
	got, err := (&Config{Type: TypeAPIKey, Key: "k", Name: "token", In: "query"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var q apiclient.Query
	if err := got.(*APIKey).InjectQuery(&q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Encode() != "token=k" {
		t.Errorf("query = %q", q.Encode())
	}
}

func TestConfigFormFields(t *testing.T) {
	got, err := (&Config{Type: TypeFormLogin, Path: "/login", Fields: map[string]string{"user": "ada"}}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f := got.(*FormLogin); f.Fields.Get("user") != "ada" {
		t.Errorf("fields = %v", f.Fields)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{Type: "oauth"},
		{Type: TypeBearer},
		{Type: TypeBasic},
		{Type: TypeAPIKey},
		{Type: TypeAPIKey, Key: "k", In: "cookie"},
		{Type: TypeTokenExchange},
		{Type: TypeJWTAssertion},
		{Type: TypeQuerySigner, Key: "k"},
		{Type: TypeFormLogin},
	}
	for _, cfg := range bad {
		if _, err := cfg.Build(); err == nil {
			t.Errorf("%+v: expected error", cfg)
		}
	}
}
