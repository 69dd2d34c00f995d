package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredWithoutColor(t *testing.T) {
	orig, origNo := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNo }()
	color.NoColor = true

	tests := map[string]string{
		"1.2.3":     "1.2.3",
		"0.4.0-dev": "0.4.0-dev",
		"snapshot":  "snapshot",
	}
	for in, want := range tests {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored() with %q = %q, want %q", in, got, want)
		}
	}
}

func TestShort(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()

	GitCommit = "abc123def456"
	if got := Short(); got != "abc123d" {
		t.Errorf("Short() = %q", got)
	}
	GitCommit = "abc"
	if got := Short(); got != "abc" {
		t.Errorf("Short() = %q", got)
	}
}
