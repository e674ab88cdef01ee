package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// renameFile is a variable so tests can fail the final step of an atomic write.
var renameFile = os.Rename

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers only ever see the old or the new content. An existing
// file keeps its permissions; perm applies to new files.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	info, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if info.IsDir() {
			return fmt.Errorf("'%s' is a directory, not a file", path)
		}
		perm = info.Mode().Perm()
	case !errors.Is(statErr, os.ErrNotExist):
		return fmt.Errorf("failed to stat '%s': %w", path, statErr)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in '%s': %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file '%s': %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file '%s': %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", tmpName, err)
	}
	if err = renameFile(tmpName, path); err != nil {
		return fmt.Errorf("failed to move '%s' into place: %w", path, err)
	}
	return nil
}
