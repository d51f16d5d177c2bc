package apiclient

import (
	"time"

	"github.com/kbukum/apikit/validation"
)

// Config configures a Client.
type Config struct {
	// Name identifies the client in logs, metrics and health reports.
	Name string `yaml:"name" mapstructure:"name"`
	// RootURL prefixes every request path. Trailing slashes are dropped.
	RootURL string `yaml:"root_url" mapstructure:"root_url" validate:"required,http_url"`
	// Encoding is the IANA or WHATWG charset used for text bodies.
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	// DefaultContent is what ContentAuto resolves to. It may not be auto.
	// Any spelling ParseContentKind accepts is normalized by ApplyDefaults.
	DefaultContent ContentKind `yaml:"default_content" mapstructure:"default_content"`
	// Timeout bounds each call made through the client, including those a
	// sign-in hook makes, and separately bounds the sign-in as a whole.
	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	TLS     *TLSConfig        `yaml:"tls" mapstructure:"tls"`
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "apiclient"
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if k, err := ParseContentKind(string(c.DefaultContent)); err == nil {
		c.DefaultContent = k
	}
}

// Validate checks the configuration. Failures are argument errors.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return &Error{Kind: KindArgument, Message: "invalid client config", Err: err}
	}
	if c.Timeout < 0 {
		return NewArgumentError("timeout must not be negative (got: %s)", c.Timeout)
	}
	if !c.DefaultContent.Valid() {
		return NewArgumentError("unknown default content kind %q", string(c.DefaultContent))
	}
	if c.DefaultContent == ContentAuto {
		return NewArgumentError("default content kind may not be auto")
	}
	if _, err := lookupEncoding(c.Encoding); err != nil {
		return &Error{Kind: KindArgument, Message: "invalid client config", Err: err}
	}
	if err := c.TLS.Validate(); err != nil {
		return &Error{Kind: KindArgument, Message: "invalid client config", Err: err}
	}
	return nil
}
