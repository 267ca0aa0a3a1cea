package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"mixarr/internal/utils/fs"
)

func TestResetDir_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	if err := fs.ResetDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected a directory")
	}
}

func TestResetDir_DiscardsPriorContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stale.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fs.ResetDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory after reset, found %d entries", len(entries))
	}

	// Reset is idempotent
	if err := fs.ResetDir(dir); err != nil {
		t.Fatalf("second reset failed: %v", err)
	}
}

func TestResetDir_RejectsFilePath(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fs.ResetDir(f); err == nil {
		t.Fatalf("expected error for non-directory path, got nil")
	}
}

func TestResetDir_EmptyPath(t *testing.T) {
	if err := fs.ResetDir(""); err == nil {
		t.Fatalf("expected error for empty path, got nil")
	}
}
