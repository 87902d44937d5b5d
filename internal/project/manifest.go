// Package project locates and reads the flint.toml crate manifest.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the crate root is identified by.
const ManifestName = "flint.toml"

// Manifest describes a crate's flint.toml.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Output  string `toml:"output"` // output directory, relative to the manifest
	} `toml:"package"`
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ManifestName, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", ManifestName, undecoded[0].String())
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: package.name is required", ManifestName)
	}
	return &m, nil
}

// Find walks upward from dir looking for a manifest.
// Returns the manifest path, or ok=false when the filesystem root is reached.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// CrateNameFor resolves the crate name for an input path: the enclosing
// manifest's package.name when one exists, otherwise the file's base name
// without extension.
func CrateNameFor(inputPath string) string {
	if inputPath == "" || inputPath[0] == '<' {
		return "main"
	}
	if manifestPath, ok := Find(filepath.Dir(inputPath)); ok {
		if m, err := Load(manifestPath); err == nil {
			return m.Package.Name
		}
	}
	base := filepath.Base(inputPath)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
