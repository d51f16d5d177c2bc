package auth

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/apikit/apiclient"
	"github.com/kbukum/apikit/validation"
)

// Strategy names accepted by Config.Type.
const (
	TypeNone          = "none"
	TypeBearer        = "bearer"
	TypeBasic         = "basic"
	TypeAPIKey        = "api_key"
	TypeTokenExchange = "token_exchange"
	TypeJWTAssertion  = "jwt_assertion"
	TypeQuerySigner   = "query_signer"
	TypeFormLogin     = "form_login"
)

// Config selects and configures one strategy from configuration files.
type Config struct {
	Type string `yaml:"type" mapstructure:"type" validate:"omitempty,oneof=none bearer basic api_key token_exchange jwt_assertion query_signer form_login"`

	Token    string `yaml:"token" mapstructure:"token"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`

	// Key and Name configure api_key and query_signer. In is "header" or "query".
	Key  string `yaml:"key" mapstructure:"key"`
	Name string `yaml:"name" mapstructure:"name"`
	In   string `yaml:"in" mapstructure:"in" validate:"omitempty,oneof=header query"`

	Secret   string        `yaml:"secret" mapstructure:"secret"`
	Issuer   string        `yaml:"issuer" mapstructure:"issuer"`
	Subject  string        `yaml:"subject" mapstructure:"subject"`
	Audience []string      `yaml:"audience" mapstructure:"audience"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// Path and Fields configure token_exchange and form_login.
	Path       string            `yaml:"path" mapstructure:"path"`
	Fields     map[string]string `yaml:"fields" mapstructure:"fields"`
	TokenField string            `yaml:"token_field" mapstructure:"token_field"`
	CookieName string            `yaml:"cookie_name" mapstructure:"cookie_name"`
}

// Validate checks the strategy name and the fields it needs.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	need := func(ok bool, field string) error {
		if !ok {
			return fmt.Errorf("auth: %s requires %s", c.Type, field)
		}
		return nil
	}
	switch c.Type {
	case TypeBearer:
		return need(c.Token != "", "token")
	case TypeBasic:
		return need(c.Username != "", "username")
	case TypeAPIKey:
		return need(c.Key != "", "key")
	case TypeTokenExchange, TypeFormLogin:
		return need(c.Path != "", "path")
	case TypeJWTAssertion:
		return need(c.Secret != "", "secret")
	case TypeQuerySigner:
		return need(c.Key != "" && c.Secret != "", "key and secret")
	}
	return nil
}

// Build returns the credentials for c, or nil for none. FormLogin also
// needs apiclient.WithCookieJar on the client.
func (c *Config) Build() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Type {
	case TypeBearer:
		return Bearer{Token: c.Token}, nil
	case TypeBasic:
		return Basic{Username: c.Username, Password: c.Password}, nil
	case TypeAPIKey:
		if c.In == "query" {
			return APIKeyQuery(c.Name, c.Key), nil
		}
		return APIKeyHeader(c.Name, c.Key), nil
	case TypeTokenExchange:
		return &TokenExchange{
			Path:        c.Path,
			Credentials: apiclient.Form(c.values()),
			TokenField:  c.TokenField,
		}, nil
	case TypeJWTAssertion:
		return &JWTAssertion{
			Issuer:   c.Issuer,
			Subject:  c.Subject,
			Audience: c.Audience,
			Secret:   []byte(c.Secret),
			TTL:      c.TTL,
		}, nil
	case TypeQuerySigner:
		return &QuerySigner{Key: c.Key, Secret: []byte(c.Secret), KeyParam: c.Name}, nil
	case TypeFormLogin:
		return &FormLogin{Path: c.Path, Fields: c.values(), CookieName: c.CookieName}, nil
	default:
		return nil, nil
	}
}

func (c *Config) values() url.Values {
	v := url.Values{}
	for k, val := range c.Fields {
		v.Set(k, val)
	}
	return v
}
