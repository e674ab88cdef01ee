package registry

import (
	"bytes"
	"fmt"
	"slices"

	"go.yaml.in/yaml/v3"
)

// ExtensionsKey is the top-level key holding the extension mapping.
const ExtensionsKey = "extensions"

// entryFieldOrder is the order recognized fields are written in when an entry
// is created or a missing field is added.
var entryFieldOrder = []string{"args", "cmd", "enabled", "envs", "name", "type"}

// Registry is a parsed host configuration document. It keeps the full YAML
// node tree so that comments, key order and keys it does not understand are
// written back unchanged. Only the subtree of the entry being changed is
// rebuilt.
type Registry struct {
	doc    *yaml.Node
	layout layout
}

// layout is the indentation style a document was written in. Re-encoding
// with the same style keeps untouched entries byte-identical.
type layout struct {
	indent int
	// compact block sequences put "- " at the indentation of their parent
	// key, as goose writes them.
	compact bool
}

var defaultLayout = layout{indent: 2, compact: true}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		doc: &yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{newMapping()},
		},
		layout: defaultLayout,
	}
}

// Parse decodes a registry document. Empty input yields an empty registry.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if doc.Kind == 0 {
		return New(), nil
	}
	if doc.Kind != yaml.DocumentNode {
		return nil, fmt.Errorf("%w: unexpected node kind at document root", ErrMalformedDocument)
	}
	switch {
	case len(doc.Content) == 0, isNull(doc.Content[0]):
		doc.Content = []*yaml.Node{newMapping()}
	case doc.Content[0].Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: document root must be a mapping", ErrMalformedDocument)
	}

	r := &Registry{doc: &doc, layout: detectLayout(doc.Content[0])}
	exts, err := r.extensions(false)
	if err != nil {
		return nil, err
	}
	if exts != nil {
		for i := 0; i+1 < len(exts.Content); i += 2 {
			if value := resolve(exts.Content[i+1]); value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: extension '%s' must be a mapping (line %d)",
					ErrMalformedDocument, exts.Content[i].Value, exts.Content[i+1].Line)
			}
		}
	}
	return r, nil
}

// Bytes serializes the registry.
func (r *Registry) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(r.layout.indent)
	if r.layout.compact {
		enc.CompactSeqIndent()
	}
	if err := enc.Encode(r.doc); err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return buf.Bytes(), nil
}

// Names returns the registered extension names in document order.
func (r *Registry) Names() []string {
	exts, _ := r.extensions(false)
	if exts == nil {
		return nil
	}
	names := make([]string, 0, len(exts.Content)/2)
	for i := 0; i+1 < len(exts.Content); i += 2 {
		names = append(names, exts.Content[i].Value)
	}
	return names
}

// Get decodes the named entry.
func (r *Registry) Get(name string) (ExtensionEntry, error) {
	exts, err := r.extensions(false)
	if err != nil {
		return ExtensionEntry{}, err
	}
	idx := findKey(exts, name)
	if idx < 0 {
		return ExtensionEntry{}, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return decodeEntry(exts.Content[idx], exts.Content[idx+1])
}

// Entries decodes every entry in document order.
func (r *Registry) Entries() ([]ExtensionEntry, error) {
	exts, err := r.extensions(false)
	if err != nil || exts == nil {
		return nil, err
	}
	entries := make([]ExtensionEntry, 0, len(exts.Content)/2)
	for i := 0; i+1 < len(exts.Content); i += 2 {
		entry, err := decodeEntry(exts.Content[i], exts.Content[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Upsert inserts entry, or replaces every recognized field of an existing
// entry with the same name. Keys inside the existing entry that are not
// recognized fields are left where they are.
func (r *Registry) Upsert(entry ExtensionEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	entry = entry.normalized()

	fields, err := entryFields(entry)
	if err != nil {
		return err
	}

	exts, err := r.extensions(true)
	if err != nil {
		return err
	}

	idx := findKey(exts, entry.Name)
	if idx < 0 {
		key, err := encodeNode(entry.Name)
		if err != nil {
			return err
		}
		value := newMapping()
		for _, name := range entryFieldOrder {
			value.Content = append(value.Content, scalarKey(name), fields[name])
		}
		exts.Content = append(exts.Content, key, value)
		return nil
	}

	current := ownMapping(exts, idx)
	for _, name := range entryFieldOrder {
		setField(current, name, fields[name])
	}
	return nil
}

// SetEnabled sets the enabled field of the entry stored under key, leaving
// every other field of it as it is. It reports whether the value changed.
func (r *Registry) SetEnabled(key string, enabled bool) (bool, error) {
	exts, err := r.extensions(false)
	if err != nil {
		return false, err
	}
	idx := findKey(exts, key)
	if idx < 0 {
		return false, fmt.Errorf("%w: '%s'", ErrNotFound, key)
	}

	if j := findKey(resolve(exts.Content[idx+1]), "enabled"); j >= 0 {
		var current bool
		if err := resolve(exts.Content[idx+1]).Content[j+1].Decode(&current); err == nil && current == enabled {
			return false, nil
		}
	}

	value, err := encodeNode(enabled)
	if err != nil {
		return false, err
	}
	setField(ownMapping(exts, idx), "enabled", value)
	return true, nil
}

// Remove deletes the named entry.
func (r *Registry) Remove(name string) error {
	exts, err := r.extensions(false)
	if err != nil {
		return err
	}
	idx := findKey(exts, name)
	if idx < 0 {
		return fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	exts.Content = slices.Delete(exts.Content, idx, idx+2)
	return nil
}

// extensions returns the extensions mapping node. With create set, a missing
// or null mapping is materialized and flow style is switched to block so new
// entries are written one key per line.
func (r *Registry) extensions(create bool) (*yaml.Node, error) {
	root := r.doc.Content[0]
	idx := findKey(root, ExtensionsKey)
	if idx < 0 {
		if !create {
			return nil, nil
		}
		exts := newMapping()
		root.Content = append(root.Content, scalarKey(ExtensionsKey), exts)
		return exts, nil
	}

	exts := root.Content[idx+1]
	switch {
	case isNull(exts):
		if !create {
			return nil, nil
		}
		replacement := newMapping()
		replacement.LineComment = exts.LineComment
		root.Content[idx+1] = replacement
		return replacement, nil
	case exts.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: '%s' must be a mapping (line %d)", ErrMalformedDocument, ExtensionsKey, exts.Line)
	}
	if create {
		exts.Style &^= yaml.FlowStyle
	}
	return exts, nil
}

// detectLayout reads the mapping indent and sequence style from the first
// nested block mapping and block sequence found in root.
func detectLayout(root *yaml.Node) layout {
	l := defaultLayout
	var foundIndent, foundSeq bool

	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n.Kind != yaml.MappingNode || (foundIndent && foundSeq) {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if len(value.Content) == 0 || value.Style&yaml.FlowStyle != 0 || value.Line == key.Line {
				continue
			}
			offset := value.Content[0].Column - key.Column
			switch value.Kind {
			case yaml.MappingNode:
				if !foundIndent && offset > 0 {
					l.indent, foundIndent = offset, true
				}
				walk(value)
			case yaml.SequenceNode:
				if !foundSeq {
					// "- " takes two columns: items sit two columns right of
					// the key when the dash is not indented.
					l.compact, foundSeq = offset <= 2, true
				}
				for _, item := range value.Content {
					walk(item)
				}
			}
		}
	}
	walk(root)

	if l.indent < 2 || l.indent > 9 {
		l.indent = defaultLayout.indent
	}
	return l
}

// ownMapping returns the entry mapping at exts.Content[idx+1]. An alias
// shares its target with other nodes, so it is replaced by a private copy.
func ownMapping(exts *yaml.Node, idx int) *yaml.Node {
	current := exts.Content[idx+1]
	if current.Kind != yaml.MappingNode {
		copied := *resolve(current)
		copied.Content = slices.Clone(copied.Content)
		copied.Anchor = ""
		current = &copied
		exts.Content[idx+1] = current
	}
	return current
}

// setField replaces the value of name in mapping, keeping its comments, or
// appends the field when it is missing.
func setField(mapping *yaml.Node, name string, value *yaml.Node) {
	if j := findKey(mapping, name); j >= 0 {
		old := mapping.Content[j+1]
		value.HeadComment = old.HeadComment
		value.LineComment = old.LineComment
		value.FootComment = old.FootComment
		mapping.Content[j+1] = value
		return
	}
	mapping.Content = append(mapping.Content, scalarKey(name), value)
}

func decodeEntry(key, value *yaml.Node) (ExtensionEntry, error) {
	var entry ExtensionEntry
	if err := resolve(value).Decode(&entry); err != nil {
		return ExtensionEntry{}, fmt.Errorf("%w: extension '%s': %v", ErrMalformedDocument, key.Value, err)
	}
	if entry.Name == "" {
		entry.Name = key.Value
	}
	return entry.normalized(), nil
}

func entryFields(entry ExtensionEntry) (map[string]*yaml.Node, error) {
	values := map[string]interface{}{
		"args":    entry.Args,
		"cmd":     entry.Cmd,
		"enabled": entry.Enabled,
		"envs":    entry.Envs,
		"name":    entry.Name,
		"type":    entry.Type,
	}
	fields := make(map[string]*yaml.Node, len(values))
	for name, v := range values {
		n, err := encodeNode(v)
		if err != nil {
			return nil, err
		}
		fields[name] = n
	}
	return fields, nil
}

func encodeNode(v interface{}) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return n, nil
}

func findKey(mapping *yaml.Node, key string) int {
	if mapping == nil {
		return -1
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarKey(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
