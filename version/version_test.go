package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	origRead := readBuildInfo
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		readBuildInfo = origRead
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetFromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "3f2a9c1d0e5b"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		},
	})
	Version, GitCommit, BuildTime = "dev", "", ""

	info := Get()
	if info.GitCommit != "3f2a9c1" || !info.IsDirty || info.IsRelease {
		t.Errorf("info = %+v", info)
	}
	if got := info.Short(); got != "dev-3f2a9c1-dirty" {
		t.Errorf("Short() = %q", got)
	}
	if got := info.String(); got != "dev-3f2a9c1-dirty built 2026-03-01T10:00:00Z go1.26.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestLdflagsWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "aaaaaaaaaa"}},
	})
	Version, GitCommit, BuildTime = "1.2.0", "bbbbbbb", ""

	info := Get()
	if !info.IsRelease || info.Short() != "1.2.0-bbbbbbb" {
		t.Errorf("info = %+v", info)
	}
	if ua := UserAgent("apikit"); ua != "apikit/1.2.0 (go1.26.0)" {
		t.Errorf("UserAgent() = %q", ua)
	}
}

func TestNoBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)
	Version, GitCommit, BuildTime = "dev", "", ""

	if got := Get().String(); got != "dev" {
		t.Errorf("String() = %q", got)
	}
	if ua := UserAgent("apicall"); ua != "apicall/dev" {
		t.Errorf("UserAgent() = %q", ua)
	}
}
