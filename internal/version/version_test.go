package version

import (
	"regexp"
	"testing"
)

func TestVersionHasSemanticShape(t *testing.T) {
	if Version == "" {
		t.Fatalf("Version must have a default value")
	}
	// Color escapes may wrap the digits; the digits themselves must form
	// a major.minor.patch triple.
	plain := regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(Version, "")
	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(plain) {
		t.Fatalf("Version %q is not major.minor.patch", plain)
	}
}

func TestBuildMetadataOverridable(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() {
		GitCommit, BuildDate = origCommit, origDate
	}()

	GitCommit = "abc123def456"
	BuildDate = "2026-08-30T10:30:00Z"
	if GitCommit != "abc123def456" || BuildDate != "2026-08-30T10:30:00Z" {
		t.Fatalf("build metadata not overridable: %q %q", GitCommit, BuildDate)
	}
}
