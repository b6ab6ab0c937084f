package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	Version, GitCommit, BuildDate = "v1.2.0", "unknown", "unknown"
	if got := GetFullVersion(); got != "v1.2.0" {
		t.Errorf("GetFullVersion() = %q, want %q", got, "v1.2.0")
	}

	GitCommit, BuildDate = "abc123", "2026-10-17"
	want := "v1.2.0 (commit abc123, built 2026-10-17)"
	if got := GetFullVersion(); got != want {
		t.Errorf("GetFullVersion() = %q, want %q", got, want)
	}
}
