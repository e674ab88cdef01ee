// Package scaffold creates new goose tool extensions: a uv-managed Python
// package with an MCP server boilerplate, registered in the goose registry.
package scaffold

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/tool-alchemist/alchemist/internal/backup"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/registry"
	"github.com/tool-alchemist/alchemist/internal/util"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	serverTemplate = "server.py.tmpl"
	initTemplate   = "__init__.py.tmpl"
)

var (
	// ErrInvalidToolName is returned for names that cannot become a package.
	ErrInvalidToolName = util.ErrInvalidToolName
	// ErrUVNotFound is returned when the uv executable is not on PATH.
	ErrUVNotFound = errors.New("uv command not found; install it from https://docs.astral.sh/uv/")
	// ErrToolExists is returned when creating a tool whose directory exists.
	ErrToolExists = errors.New("tool already exists")
	// ErrToolNotFound is returned when operating on a tool that was never created.
	ErrToolNotFound = errors.New("tool not found")
)

// lookPath is a variable so tests can pretend uv is installed.
var lookPath = exec.LookPath

// TemplateData holds the variables available to the boilerplate templates.
type TemplateData struct {
	Name        string // As given, e.g. "Some Tool"
	Snake       string // some_tool
	Kebab       string // some-tool
	Description string
}

// Scaffolder creates and maintains tools under DataPath.
type Scaffolder struct {
	DataPath        string
	TemplatePath    string // optional directory overriding the embedded templates
	GooseConfigPath string
	Backups         *backup.Manager // optional; registry is backed up before edits
	Runner          Runner
}

// New creates a Scaffolder that runs uv through os/exec.
func New(dataPath, gooseConfigPath string) *Scaffolder {
	return &Scaffolder{
		DataPath:        dataPath,
		GooseConfigPath: gooseConfigPath,
		Runner:          ExecRunner{},
	}
}

// ToolRootPath returns <data>/<kebab-name>.
func (s *Scaffolder) ToolRootPath(name string) (string, error) {
	if err := util.ValidateToolName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.DataPath, util.ToKebabCase(name)), nil
}

// GetToolPath returns the server.py file a tool's implementation lives in.
func (s *Scaffolder) GetToolPath(name string) (string, error) {
	root, err := s.ToolRootPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "src", util.ToSnakeCase(name), "server.py"), nil
}

// CreateNewToolBoilerplate initializes a uv package for name, writes the MCP
// server boilerplate into it and registers it as a goose extension. It
// returns the tool's root directory.
func (s *Scaffolder) CreateNewToolBoilerplate(ctx context.Context, name, description string) (root string, err error) {
	root, err = s.ToolRootPath(name)
	if err != nil {
		return "", err
	}
	if err := checkUVInstalled(); err != nil {
		return "", err
	}
	if _, err := os.Stat(root); err == nil {
		return "", fmt.Errorf("%w: '%s'", ErrToolExists, root)
	}

	data := TemplateData{
		Name:        name,
		Snake:       util.ToSnakeCase(name),
		Kebab:       util.ToKebabCase(name),
		Description: description,
	}
	if data.Description == "" {
		data.Description = name
	}

	if err := os.MkdirAll(s.DataPath, 0750); err != nil {
		return "", fmt.Errorf("failed to create data directory '%s': %w", s.DataPath, err)
	}

	// A half-created tool would make every retry fail with ErrToolExists.
	toolRoot := root
	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.RemoveAll(toolRoot); rmErr != nil {
			err = fmt.Errorf("%w (remove '%s' manually before retrying: %v)", err, toolRoot, rmErr)
		}
	}()

	log.Debug("Running uv init for %s in %s", data.Kebab, s.DataPath)
	if _, err := s.Runner.Run(ctx, s.DataPath, "uv", "init", "--package", "--description", data.Description, data.Kebab); err != nil {
		return "", err
	}

	if err := s.renderBoilerplate(root, data); err != nil {
		return "", err
	}

	log.Debug("Adding the mcp dependency to %s", data.Kebab)
	if _, err := s.Runner.Run(ctx, root, "uv", "add", "mcp[cli]"); err != nil {
		return "", err
	}

	if err := s.register(data.Kebab, root); err != nil {
		return "", err
	}
	return root, nil
}

// AddDependency runs `uv add` for deps inside an existing tool and returns
// the dependency list recorded in its pyproject.toml afterwards.
func (s *Scaffolder) AddDependency(ctx context.Context, name string, deps ...string) ([]string, error) {
	if len(deps) == 0 {
		return nil, errors.New("at least one dependency is required")
	}
	root, err := s.ToolRootPath(name)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s'", ErrToolNotFound, root)
	}
	if err := checkUVInstalled(); err != nil {
		return nil, err
	}

	args := append([]string{"add"}, deps...)
	if _, err := s.Runner.Run(ctx, root, "uv", args...); err != nil {
		return nil, err
	}

	project, err := ReadPyProject(root)
	if err != nil {
		return nil, err
	}
	return project.Project.Dependencies, nil
}

func checkUVInstalled() error {
	if _, err := lookPath("uv"); err != nil {
		return ErrUVNotFound
	}
	return nil
}

// templates returns the override directory when configured, else the
// embedded set.
func (s *Scaffolder) templates() (fs.FS, error) {
	if s.TemplatePath == "" {
		return fs.Sub(embeddedTemplates, "templates")
	}
	info, err := os.Stat(s.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("template path '%s': %w", s.TemplatePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path '%s' is not a directory", s.TemplatePath)
	}
	return os.DirFS(s.TemplatePath), nil
}

func (s *Scaffolder) renderBoilerplate(root string, data TemplateData) error {
	templates, err := s.templates()
	if err != nil {
		return err
	}

	pkgDir := filepath.Join(root, "src", data.Snake)
	if err := os.MkdirAll(pkgDir, 0750); err != nil {
		return fmt.Errorf("failed to create package directory '%s': %w", pkgDir, err)
	}

	outputs := map[string]string{
		serverTemplate: "server.py",
		initTemplate:   "__init__.py",
	}
	for tmplName, outName := range outputs {
		tmpl, err := template.ParseFS(templates, tmplName)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", tmplName, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", tmplName, err)
		}

		outPath := filepath.Join(pkgDir, outName)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}
	return nil
}

// register adds the tool to the goose registry, backing the registry up first.
func (s *Scaffolder) register(kebab, root string) error {
	if s.GooseConfigPath == "" {
		return nil
	}
	if s.Backups != nil {
		backupPath, err := s.Backups.Backup(s.GooseConfigPath)
		if err != nil {
			return fmt.Errorf("failed to back up '%s': %w", s.GooseConfigPath, err)
		}
		if backupPath != "" {
			log.Debug("Backed up '%s' to '%s'", s.GooseConfigPath, backupPath)
		}
	}

	entry := registry.NewEntry(kebab, "uvx", "--from", root, kebab)
	if err := registry.UpsertExtension(s.GooseConfigPath, entry); err != nil {
		return fmt.Errorf("failed to register extension '%s': %w", kebab, err)
	}
	return nil
}
