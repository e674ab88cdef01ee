package registry

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tool-alchemist/alchemist/internal/util"
)

// writeFile is a variable so tests can simulate a failed save.
var writeFile = util.WriteFileAtomic

// Load reads the registry at path. A missing file is an empty registry.
func Load(path string) (*Registry, error) {
	r, _, err := load(path)
	return r, err
}

func load(path string) (*Registry, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil, nil
		}
		return nil, nil, fmt.Errorf("%w: failed to read registry '%s': %w", ErrIO, path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse registry '%s': %w", path, err)
	}
	return r, data, nil
}

// Save atomically replaces the file at path with the serialized registry.
func Save(path string, r *Registry) error {
	if r == nil {
		return errors.New("cannot save a nil registry")
	}
	data, err := r.Bytes()
	if err != nil {
		return err
	}
	if err := writeFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// UpsertExtension adds entry to the registry at path or replaces the entry
// with the same name. The entry is validated before the file is touched.
func UpsertExtension(path string, entry ExtensionEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return update(path, func(r *Registry) error {
		return r.Upsert(entry)
	})
}

// RemoveExtension deletes the named entry from the registry at path.
func RemoveExtension(path, name string) error {
	return update(path, func(r *Registry) error {
		return r.Remove(name)
	})
}

// update runs one load, mutate, save cycle. Nothing is written when the
// mutation fails or leaves the serialized document unchanged.
func update(path string, mutate func(*Registry) error) error {
	r, original, err := load(path)
	if err != nil {
		return err
	}
	if err := mutate(r); err != nil {
		return err
	}

	data, err := r.Bytes()
	if err != nil {
		return err
	}
	if original != nil && bytes.Equal(data, original) {
		return nil
	}
	if err := writeFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
