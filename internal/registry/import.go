package registry

import (
	"encoding/json"
	"fmt"
	"sort"
)

// mcpServer is one server in the "mcpServers" JSON snippet most MCP servers
// publish in their README.
type mcpServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	URL     string            `json:"url"`
}

// ParseMCPServers converts an {"mcpServers": {...}} snippet into stdio
// entries sorted by name. Servers without a command are returned in skipped.
func ParseMCPServers(data []byte) (entries []ExtensionEntry, skipped []string, err error) {
	var snippet struct {
		MCPServers map[string]mcpServer `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &snippet); err != nil {
		return nil, nil, fmt.Errorf("%w: not an mcpServers JSON document: %v", ErrInvalidEntry, err)
	}
	if snippet.MCPServers == nil {
		return nil, nil, fmt.Errorf("%w: document does not contain an 'mcpServers' key", ErrInvalidEntry)
	}

	names := make([]string, 0, len(snippet.MCPServers))
	for name := range snippet.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		server := snippet.MCPServers[name]
		if server.Command == "" {
			skipped = append(skipped, name)
			continue
		}
		entry := NewEntry(name, server.Command, server.Args...)
		for k, v := range server.Env {
			entry.Envs[k] = v
		}
		if err := entry.Validate(); err != nil {
			return nil, nil, fmt.Errorf("server '%s': %w", name, err)
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}
