package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")

		if err := WriteFileAtomic(path, []byte("a: 1\n"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read written file: %v", err)
		}
		if string(data) != "a: 1\n" {
			t.Errorf("Unexpected content: %q", data)
		}
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("keeps existing permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chmod(path, 0644); err != nil {
			t.Fatal(err)
		}

		if err := WriteFileAtomic(path, []byte("new"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0644 {
			t.Errorf("Expected mode 0644 to be preserved, got %v", info.Mode().Perm())
		}
	})

	t.Run("failed rename leaves original intact", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("original"), 0600); err != nil {
			t.Fatal(err)
		}

		originalRename := renameFile
		renameFile = func(oldpath, newpath string) error {
			return errors.New("simulated crash")
		}
		defer func() { renameFile = originalRename }()

		if err := WriteFileAtomic(path, []byte("replacement"), 0600); err == nil {
			t.Fatal("Expected error from failed rename, got nil")
		}

		data, _ := os.ReadFile(path)
		if string(data) != "original" {
			t.Errorf("Original file was modified: %q", data)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("Expected temporary file to be cleaned up, found %d entries", len(entries))
		}
	})

	t.Run("refuses directory target", func(t *testing.T) {
		dir := t.TempDir()
		if err := WriteFileAtomic(dir, []byte("x"), 0600); err == nil {
			t.Error("Expected error when target is a directory")
		}
	})
}
