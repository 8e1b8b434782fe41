package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, b, c string) { Version, BuildTime, GitCommit = v, b, c }(Version, BuildTime, GitCommit)

	Version, BuildTime, GitCommit = "1.2.3", "unknown", "unknown"
	if got := String(); got != "v1.2.3" {
		t.Errorf("String() = %q, want v1.2.3", got)
	}

	BuildTime, GitCommit = "2026-01-02T03:04:05Z", "0123456789abcdef"
	if got, want := String(), "v1.2.3 (0123456, built 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
