package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// PyProject is the subset of pyproject.toml that alchemist reads.
type PyProject struct {
	Project struct {
		Name         string            `toml:"name"`
		Version      string            `toml:"version"`
		Description  string            `toml:"description"`
		Dependencies []string          `toml:"dependencies"`
		Scripts      map[string]string `toml:"scripts"`
	} `toml:"project"`
}

// ReadPyProject decodes <root>/pyproject.toml.
func ReadPyProject(root string) (*PyProject, error) {
	path := filepath.Join(root, "pyproject.toml")
	var p PyProject
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return &p, nil
}
