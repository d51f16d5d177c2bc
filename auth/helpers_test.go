package auth

import (
	"testing"

	"github.com/kbukum/apikit/apiclient"
	"github.com/kbukum/apikit/logger"
)

func newClient(t *testing.T, rootURL string, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()
	opts = append([]apiclient.Option{apiclient.WithLogger(logger.Nop())}, opts...)
	c, err := apiclient.New(apiclient.Config{Name: "auth-test", RootURL: rootURL}, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}
