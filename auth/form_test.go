package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/kbukum/apikit/apiclient"
)

func newLoginServer(t *testing.T, setCookie bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			if err := r.ParseForm(); err != nil || r.PostForm.Get("user") != "ada" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if setCookie {
				http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s-1", Path: "/"})
			}
			w.WriteHeader(http.StatusOK)
		default:
			ck, err := r.Cookie("sid")
			if err != nil || ck.Value != "s-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFormLoginKeepsSessionCookie(t *testing.T) {
	srv := newLoginServer(t, true)
	jar, err := NewCookieJar()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	login := &FormLogin{Path: "/login", Fields: url.Values{"user": {"ada"}}, CookieName: "sid"}
	c := newClient(t, srv.URL+"/api", apiclient.WithCookieJar(jar), apiclient.WithCredentials(login))

	if _, err := c.Get(context.Background(), "/reports"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SessionState() != apiclient.StateAuthenticated {
		t.Errorf("state = %s", c.SessionState())
	}
}

func TestFormLoginFailures(t *testing.T) {
	jar, _ := NewCookieJar()

	t.Run("no jar", func(t *testing.T) {
		srv := newLoginServer(t, true)
		c := newClient(t, srv.URL+"/api", apiclient.WithCredentials(&FormLogin{Path: "/login"}))
		if _, err := c.Get(context.Background(), "/reports"); !apiclient.IsSignIn(err) {
			t.Errorf("expected sign-in error, got %v", err)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		srv := newLoginServer(t, true)
		login := &FormLogin{Path: "/login", Fields: url.Values{"user": {"eve"}}}
		c := newClient(t, srv.URL+"/api", apiclient.WithCookieJar(jar), apiclient.WithCredentials(login))
		_, err := c.Get(context.Background(), "/reports")
		if !apiclient.IsSignIn(err) || apiclient.StatusCode(err) != http.StatusUnauthorized {
			t.Errorf("expected sign-in error with 401, got %v", err)
		}
	})

	t.Run("missing cookie", func(t *testing.T) {
		srv := newLoginServer(t, false)
		login := &FormLogin{Path: "/login", Fields: url.Values{"user": {"ada"}}, CookieName: "sid"}
		c := newClient(t, srv.URL+"/api", apiclient.WithCookieJar(jar), apiclient.WithCredentials(login))
		if _, err := c.Get(context.Background(), "/reports"); !apiclient.IsSignIn(err) {
			t.Errorf("expected sign-in error, got %v", err)
		}
	})
}
