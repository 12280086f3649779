package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	origNoColor := color.NoColor
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
		color.NoColor = origNoColor
	})
	Version, GitCommit, BuildDate = v, commit, date
	color.NoColor = true
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			withVersion(t, tt.version, "", "")
			if got := Colored(); got != tt.want {
				t.Errorf("Colored() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColoredHighlightsParts(t *testing.T) {
	withVersion(t, "1.2.3", "", "")
	color.NoColor = false
	if got := Colored(); got == "1.2.3" {
		t.Error("expected escape sequences around version parts")
	}
}
