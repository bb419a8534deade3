package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

func writeScript(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const passingScript = `
(object c (attrs parameter))
(check constant c)
`

const failingScript = `
(check constant nope)
`

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "ok.fx", passingScript)

	fset := source.NewFileSet()
	result := CheckFile(fset, path, Options{})
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	if result.Path != path {
		t.Fatalf("Path = %q, want %q", result.Path, path)
	}
}

func TestCheckFileMissing(t *testing.T) {
	fset := source.NewFileSet()
	result := CheckFile(fset, filepath.Join(t.TempDir(), "absent.fx"), Options{})
	if !result.Bag.HasErrors() {
		t.Fatal("expected an I/O diagnostic")
	}
	if result.Bag.Items()[0].Code != diag.IOLoadFile {
		t.Fatalf("diagnostics = %v", result.Bag.Items())
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "b.fx", failingScript)
	writeScript(t, dir, "a.fx", passingScript)
	writeScript(t, dir, "ignored.txt", "not a script")

	_, results, err := CheckDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Sorted path order regardless of scheduling.
	if filepath.Base(results[0].Path) != "a.fx" || filepath.Base(results[1].Path) != "b.fx" {
		t.Fatalf("result order = %q, %q", results[0].Path, results[1].Path)
	}
	if results[0].Bag.HasErrors() {
		t.Fatalf("a.fx should pass: %v", results[0].Bag.Items())
	}
	if !results[1].Bag.HasErrors() {
		t.Fatal("b.fx should fail")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	_, results, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

func TestCheckFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "f.fx", failingScript)
	cache, err := OpenCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenCacheAt: %v", err)
	}
	opts := Options{Cache: cache}

	first := CheckFile(source.NewFileSet(), path, opts)
	second := CheckFile(source.NewFileSet(), path, opts)

	if first.Bag.Len() != second.Bag.Len() {
		t.Fatalf("cached run returned %d diagnostics, want %d", second.Bag.Len(), first.Bag.Len())
	}
	for i, d := range second.Bag.Items() {
		want := first.Bag.Items()[i]
		if d.Code != want.Code || d.Message != want.Message || d.Primary.Start != want.Primary.Start {
			t.Fatalf("cached diagnostic %d = %+v, want %+v", i, d, want)
		}
	}
}
