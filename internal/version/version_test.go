package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
	if !strings.Contains(Version, ".") {
		t.Fatalf("Version %q does not look like a semantic version", Version)
	}
}

func TestVersionOverride(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	// Simulates build-time -ldflags injection.
	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Fatalf("Version = %q, want 1.2.3", Version)
	}
}
