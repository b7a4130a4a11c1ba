package source

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[tool.poetry]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src := &LocalSource{Dir: dir}
	got, err := src.Fetch(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if got != dir {
		t.Errorf("Fetch = %q, want %q", got, dir)
	}
}

func TestLocalSource_MissingDir(t *testing.T) {
	src := &LocalSource{Dir: filepath.Join(t.TempDir(), "nope")}
	if _, err := src.Fetch(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLocalSource_NotABoilerplate(t *testing.T) {
	src := &LocalSource{Dir: t.TempDir()}
	if _, err := src.Fetch(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error without pyproject.toml")
	}
}

// buildArchive produces a .tar.gz with the given entries (name -> content).
func buildArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		hdr := &tar.Header{
			Name: name,
			Mode: 0644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "boilerplate.tar.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractTarGz(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"pyproject.toml":  "[tool.poetry]\n",
		"manage.py":       "#!/usr/bin/env python\n",
		"src/__init__.py": "",
	})

	dest := filepath.Join(t.TempDir(), "out")
	if err := extractTarGz(archive, dest); err != nil {
		t.Fatalf("extractTarGz error: %v", err)
	}

	for _, rel := range []string{"pyproject.toml", "manage.py", "src/__init__.py"} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
			t.Errorf("entry %q not extracted: %v", rel, err)
		}
	}
}

func TestExtractTarGz_RejectsTraversal(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"../evil.txt": "nope",
	})

	dest := filepath.Join(t.TempDir(), "out")
	if err := extractTarGz(archive, dest); err == nil {
		t.Fatal("expected error for traversal entry")
	}
}

func TestBoilerplateRoot_Nested(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "boilerplate-main")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "pyproject.toml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := boilerplateRoot(dir)
	if err != nil {
		t.Fatalf("boilerplateRoot error: %v", err)
	}
	if got != nested {
		t.Errorf("boilerplateRoot = %q, want %q", got, nested)
	}
}

func TestBoilerplateRoot_Invalid(t *testing.T) {
	if _, err := boilerplateRoot(t.TempDir()); err == nil {
		t.Fatal("expected error for empty extraction")
	}
}
