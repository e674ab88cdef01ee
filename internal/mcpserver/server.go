// Package mcpserver exposes the scaffolder to agents over the Model Context
// Protocol on stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tool-alchemist/alchemist/internal/docs"
	"github.com/tool-alchemist/alchemist/internal/log"
)

const (
	// Name is the server name reported during initialization.
	Name = "Tool Alchemist"
	// Version is the server version reported during initialization.
	Version = "0.1.0"
)

// Toolsmith is the subset of the scaffolder the server drives.
type Toolsmith interface {
	CreateNewToolBoilerplate(ctx context.Context, name, description string) (string, error)
	GetToolPath(name string) (string, error)
	AddDependency(ctx context.Context, name string, deps ...string) ([]string, error)
}

// DocsFunc returns the MCP reference documentation.
type DocsFunc func(ctx context.Context) (string, error)

// Handlers implements the tools and resources of the server.
type Handlers struct {
	Tools Toolsmith
	Docs  DocsFunc
}

// New creates an MCP server with the scaffolding tools and the documentation
// resource registered.
func New(h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("CreateNewToolBoilerplate",
		mcp.WithDescription("Create a new goose tool: a uv Python package with an MCP server boilerplate, registered as a goose extension. Returns the path of the file to implement the tool in."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Tool name, e.g. 'Weather Lookup'. Letters, digits, spaces, '-' and '_' only."),
		),
		mcp.WithString("description",
			mcp.Description("One-line description written into the package metadata"),
		),
	), h.CreateNewToolBoilerplate)

	s.AddTool(mcp.NewTool("GetToolPath",
		mcp.WithDescription("Return the path of the server.py file implementing an existing tool."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Tool name as given when it was created"),
		),
	), h.GetToolPath)

	s.AddTool(mcp.NewTool("AddDependency",
		mcp.WithDescription("Add Python dependencies to an existing tool with uv."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Tool name as given when it was created"),
		),
		mcp.WithArray("dependencies",
			mcp.Required(),
			mcp.Description("PEP 508 requirement strings, e.g. 'httpx' or 'pydantic>=2'"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), h.AddDependency)

	s.AddResource(mcp.NewResource(docs.ResourceURI, "MCP documentation",
		mcp.WithResourceDescription("Model Context Protocol reference for writing tool servers"),
		mcp.WithMIMEType("text/plain"),
	), h.ReadDocs)

	log.Debug("MCP server initialized with 3 tools and 1 resource")
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(h *Handlers) error {
	return server.ServeStdio(New(h))
}

func (h *Handlers) CreateNewToolBoilerplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	description := req.GetString("description", "")

	root, err := h.Tools.CreateNewToolBoilerplate(ctx, name, description)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create tool '%s': %v", name, err)), nil
	}
	toolPath, err := h.Tools.GetToolPath(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Created tool '%s' in %s and registered it as a goose extension.\nImplement the tool in %s.", name, root, toolPath)), nil
}

func (h *Handlers) GetToolPath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	toolPath, err := h.Tools.GetToolPath(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toolPath), nil
}

func (h *Handlers) AddDependency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	deps, err := stringList(req.GetArguments()["dependencies"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(deps) == 0 {
		return mcp.NewToolResultError("dependencies parameter must list at least one package"), nil
	}

	recorded, err := h.Tools.AddDependency(ctx, name, deps...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add dependencies to '%s': %v", name, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Dependencies of '%s':\n%s", name, strings.Join(recorded, "\n"))), nil
}

func (h *Handlers) ReadDocs(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.Docs == nil {
		return nil, errors.New("documentation source not configured")
	}
	text, err := h.Docs(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      docs.ResourceURI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// stringList accepts a JSON array of strings, or a single string.
func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(list) == "" {
			return nil, nil
		}
		return []string{strings.TrimSpace(list)}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("dependencies[%d] must be a string, got %T", i, item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("dependencies must be an array of strings, got %T", v)
	}
}
