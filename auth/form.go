package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/apikit/apiclient"
)

// NewCookieJar returns a jar that scopes cookies by registrable domain.
func NewCookieJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// FormLogin signs in by posting Fields URL-encoded to Path. The server's
// session cookie is kept by the client's cookie jar, so nothing is
// injected afterwards.
type FormLogin struct {
	Path   string
	Fields url.Values
	// CookieName, when set, must be present in the jar after sign-in.
	CookieName string
}

func (f *FormLogin) SignIn(ctx context.Context, c *apiclient.Client) error {
	jar := c.Unwrap().Jar
	if jar == nil {
		return errors.New("auth: form login needs a client cookie jar")
	}
	if f.Path == "" {
		return errors.New("auth: form login path is empty")
	}

	_, err := c.Post(ctx, f.Path, apiclient.Form(f.Fields), apiclient.WithContent(apiclient.ContentURLEncoded))
	if err != nil {
		return err
	}
	if f.CookieName == "" {
		return nil
	}

	root, err := url.Parse(c.RootURL() + "/")
	if err != nil {
		return fmt.Errorf("auth: parse root url: %w", err)
	}
	for _, ck := range jar.Cookies(root) {
		if ck.Name == f.CookieName {
			return nil
		}
	}
	return fmt.Errorf("auth: sign-in did not set cookie %q", f.CookieName)
}
