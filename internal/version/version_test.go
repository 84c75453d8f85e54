package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withVars(t *testing.T, v, commit, built string) {
	t.Helper()
	origV, origC, origB := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = v, commit, built
	t.Cleanup(func() { Version, GitCommit, BuildTime = origV, origC, origB })
}

func TestLdflagsWin(t *testing.T) {
	withVars(t, "v1.2.0", "abcdef0123456", "2025-03-01T10:00:00Z")
	withBuildInfo(t, nil)

	info := Get()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "abcdef0123456", info.GitCommit)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), info.BuildTime)
	assert.True(t, IsRelease())
	assert.Equal(t, "v1.2.0 (abcdef0)", Short())
}

func TestFallsBackToVCSSettings(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abc"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "dev-1234567", GetVersion())
	assert.Equal(t, "1234567890abc", GetGitCommit())
	assert.True(t, IsDirty())
	assert.False(t, IsRelease())
	assert.Equal(t, "dev-1234567", Short())
}

func TestNoBuildInfo(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown")
	withBuildInfo(t, nil)

	assert.Equal(t, "dev", GetVersion())
	assert.Equal(t, "unknown", GetGitCommit())
	assert.False(t, IsDirty())
	assert.Equal(t, "dev", Short())
	assert.True(t, Get().BuildTime.IsZero())
}

func TestParseBuildTime(t *testing.T) {
	assert.False(t, parseBuildTime("2025-03-01 10:00:00").IsZero())
	assert.False(t, parseBuildTime("2025-03-01T10:00:00").IsZero())
	assert.True(t, parseBuildTime("yesterday").IsZero())
	assert.True(t, parseBuildTime("").IsZero())
}

func TestDetailed(t *testing.T) {
	info := &BuildInfo{
		Version:   "v1.0.0",
		GitCommit: "abc",
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Engines:   []string{"handlebars", "pongo2"},
		Dirty:     true,
	}

	got := info.Detailed()
	assert.Contains(t, got, "Version: v1.0.0")
	assert.Contains(t, got, "Commit: abc")
	assert.Contains(t, got, "Engines: handlebars, pongo2")
	assert.Contains(t, got, "Working directory: dirty")
	assert.NotContains(t, got, "Built:")
}
