package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emblem/internal/diag"
	"emblem/internal/project"
)

// settings are the options shared by the document commands, after the
// project manifest has been applied.
type settings struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	verbosity      diag.Verbosity
	jobs           int
	format         string
	roots          []string // из [paths].include, когда путь не задан
	manifest       *project.Manifest
}

// loadSettings reads the persistent flags and overlays emblem.toml: values
// from the manifest apply unless the flag was set explicitly.
func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	root := cmd.Root().PersistentFlags()

	var err error
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	verbosity, err := root.GetString("verbosity")
	if err != nil {
		return s, fmt.Errorf("failed to get verbosity flag: %w", err)
	}
	if cmd.Flags().Lookup("jobs") != nil {
		if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("format") != nil {
		if s.format, err = cmd.Flags().GetString("format"); err != nil {
			return s, fmt.Errorf("failed to get format flag: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return s, err
	}
	manifest, ok, err := project.Load(wd)
	if err != nil {
		return s, err
	}
	if ok {
		s.manifest = manifest
		withFormat := cmd.Name() == "check" || cmd.Name() == "watch"
		applyManifest(&s, &verbosity, manifest, cmd.Flags().Changed, withFormat)
	}

	if s.verbosity, err = diag.ParseVerbosity(verbosity); err != nil {
		return s, err
	}
	if s.maxDiagnostics < 0 {
		return s, fmt.Errorf("--max-diagnostics must be non-negative")
	}
	return s, nil
}

func applyManifest(s *settings, verbosity *string, m *project.Manifest, changed func(string) bool, withFormat bool) {
	c := m.Config.Check
	if m.IsDefined("check", "verbosity") && !changed("verbosity") {
		*verbosity = c.Verbosity
	}
	if m.IsDefined("check", "max_diagnostics") && !changed("max-diagnostics") {
		s.maxDiagnostics = c.MaxDiagnostics
	}
	if m.IsDefined("check", "jobs") && !changed("jobs") {
		s.jobs = c.Jobs
	}
	if m.IsDefined("check", "format") && !changed("format") && withFormat {
		s.format = c.Format
	}
	s.roots = m.Roots()
}
