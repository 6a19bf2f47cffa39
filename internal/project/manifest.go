// Package project locates and parses the optional syster.toml manifest,
// which provides per-project defaults for the CLI flags.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "syster.toml"

// Manifest holds project-level defaults. Flags given on the command line
// always win over manifest values.
type Manifest struct {
	Project  ProjectSection  `toml:"project"`
	Analysis AnalysisSection `toml:"analysis"`

	// Path is where the manifest was found. Not part of the TOML.
	Path string `toml:"-"`
}

// ProjectSection is the [project] table.
type ProjectSection struct {
	Name string `toml:"name"`
	// Source is the model source directory, relative to the manifest.
	Source string `toml:"source"`
}

// AnalysisSection is the [analysis] table.
type AnalysisSection struct {
	NoStdlib       bool   `toml:"no_stdlib"`
	StdlibPath     string `toml:"stdlib_path"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

// Find walks up from startDir to locate syster.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path. Unknown keys are rejected so typos in
// option names do not silently fall back to defaults.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	return &m, nil
}

// FindAndLoad resolves the manifest for startDir, if one exists.
func FindAndLoad(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// SourceDir returns the manifest's source directory resolved against the
// manifest location, or the manifest directory itself when unset.
func (m *Manifest) SourceDir() string {
	root := filepath.Dir(m.Path)
	if m.Project.Source == "" {
		return root
	}
	if filepath.IsAbs(m.Project.Source) {
		return m.Project.Source
	}
	return filepath.Join(root, m.Project.Source)
}
