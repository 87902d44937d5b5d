package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"
version = "0.1.0"
output = "dist"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.Package.Name != "demo" || m.Package.Version != "0.1.0" || m.Package.Output != "dist" {
		t.Fatalf("manifest = %+v", m.Package)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "[package]\nversion = \"1.0\"\n"},
		{"unknown key", "[package]\nname = \"x\"\nauthor = \"y\"\n"},
		{"malformed toml", "[package\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"root\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok := Find(nested)
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want one under %s", path, root)
	}
}

func TestFindMissing(t *testing.T) {
	if _, ok := Find(t.TempDir()); ok {
		t.Fatal("empty tree must not resolve a manifest")
	}
}

func TestCrateNameFor(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"pkgname\"\n")

	bare := t.TempDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"manifest wins", filepath.Join(root, "app.fl"), "pkgname"},
		{"basename fallback", filepath.Join(bare, "tool.fl"), "tool"},
		{"empty input", "", "main"},
		{"virtual input", "<input>", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CrateNameFor(tt.input); got != tt.want {
				t.Errorf("CrateNameFor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
