package main

import (
	"os"
	"path/filepath"
	"testing"

	"emblem/internal/project"
)

func TestApplyManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	body := "[check]\nverbosity = \"debug\"\nmax_diagnostics = 7\njobs = 3\nformat = \"yaml\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := project.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		changed    map[string]bool
		withFormat bool
		want       settings
		verbosity  string
	}{
		{"manifest wins", nil, true, settings{maxDiagnostics: 7, jobs: 3, format: "yaml"}, "debug"},
		{"flags win", map[string]bool{"max-diagnostics": true, "verbosity": true, "format": true}, true,
			settings{maxDiagnostics: 100, jobs: 3, format: "pretty"}, "terse"},
		{"format only for check", nil, false, settings{maxDiagnostics: 7, jobs: 3, format: "pretty"}, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings{maxDiagnostics: 100, format: "pretty"}
			verbosity := "terse"
			applyManifest(&s, &verbosity, m, func(name string) bool { return tt.changed[name] }, tt.withFormat)
			if s.maxDiagnostics != tt.want.maxDiagnostics || s.jobs != tt.want.jobs || s.format != tt.want.format {
				t.Fatalf("settings = %+v, want %+v", s, tt.want)
			}
			if verbosity != tt.verbosity {
				t.Fatalf("verbosity = %q, want %q", verbosity, tt.verbosity)
			}
			if len(s.roots) != 1 || s.roots[0] != dir {
				t.Fatalf("roots = %v", s.roots)
			}
		})
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if shouldUseTUI(uiModeAuto, 1) {
		t.Error("a single file never gets the progress view in auto mode")
	}
	if !shouldUseTUI(uiModeOn, 1) || shouldUseTUI(uiModeOff, 10) {
		t.Error("explicit modes must be honoured")
	}
}
