package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"emblem/internal/diag"
)

// Formats accepted by [check].format.
var Formats = []string{"pretty", "short", "json", "yaml"}

// Manifest is a decoded emblem.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	meta   toml.MetaData
}

// Config mirrors the tables of emblem.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Paths PathsConfig `toml:"paths"`
}

// CheckConfig holds defaults for `em check`.
type CheckConfig struct {
	Verbosity      string `toml:"verbosity"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
	Format         string `toml:"format"`
}

// PathsConfig lists the document roots, relative to the manifest.
type PathsConfig struct {
	Include []string `toml:"include"`
}

// Load finds and decodes the manifest above startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m := &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) validate() error {
	c := m.Config.Check
	if c.Verbosity != "" {
		if _, err := diag.ParseVerbosity(c.Verbosity); err != nil {
			return fmt.Errorf("[check].verbosity: %w", err)
		}
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be non-negative, got %d", c.MaxDiagnostics)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("[check].jobs must be non-negative, got %d", c.Jobs)
	}
	if c.Format != "" && !validFormat(c.Format) {
		return fmt.Errorf("[check].format must be one of %s, got %q", strings.Join(Formats, ", "), c.Format)
	}
	for _, inc := range m.Config.Paths.Include {
		if strings.TrimSpace(inc) == "" {
			return fmt.Errorf("[paths].include contains an empty path")
		}
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// IsDefined reports whether the manifest sets the given key,
// e.g. IsDefined("check", "jobs").
func (m *Manifest) IsDefined(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// Roots returns the include paths resolved against the manifest directory,
// or the manifest directory itself when none are listed.
func (m *Manifest) Roots() []string {
	if len(m.Config.Paths.Include) == 0 {
		return []string{m.Root}
	}
	roots := make([]string, 0, len(m.Config.Paths.Include))
	for _, inc := range m.Config.Paths.Include {
		p := filepath.FromSlash(inc)
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		roots = append(roots, filepath.Clean(p))
	}
	return roots
}
