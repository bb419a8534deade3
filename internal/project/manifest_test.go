package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, "ferrite.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `
[check]
max-diagnostics = 25
jobs = 4
color = "off"
cache = true
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	manifest, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if manifest.Path != path || manifest.Root != root {
		t.Fatalf("manifest location = %q in %q", manifest.Path, manifest.Root)
	}
	cfg := manifest.Config.Check
	if cfg.MaxDiagnostics != 25 || cfg.Jobs != 4 || cfg.Color != "off" || !cfg.Cache {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("no manifest should mean ok=false")
	}
}

func TestLoadEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")
	manifest, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	// All fields default to "use the CLI default".
	if manifest.Config.Check != (CheckConfig{}) {
		t.Fatalf("config = %+v", manifest.Config.Check)
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[check]\ncolor = \"sometimes\"\n")
	if _, _, err := Load(dir); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[check\n")
	if _, _, err := Load(dir); err == nil {
		t.Fatal("expected a parse error")
	}
}
