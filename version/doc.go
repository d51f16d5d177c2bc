// Package version reports the build version of apikit binaries and the
// User-Agent that API clients send.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/apikit/version.Version=1.2.0" ./cmd/apicall
//
// Unset values fall back to the VCS stamp in the binary's build info.
package version
