package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Transport kinds understood by the host.
const (
	TypeStdio          = "stdio"
	TypeSSE            = "sse"
	TypeBuiltin        = "builtin"
	TypeStreamableHTTP = "streamable_http"
)

// ExtensionEntry is one named extension in the host registry.
type ExtensionEntry struct {
	Name    string            `yaml:"name" json:"name"`
	Type    string            `yaml:"type" json:"type"`
	Cmd     string            `yaml:"cmd" json:"cmd"`
	Args    []string          `yaml:"args" json:"args"`
	Envs    map[string]string `yaml:"envs" json:"envs"`
	Enabled bool              `yaml:"enabled" json:"enabled"`
}

// NewEntry returns an enabled stdio entry.
func NewEntry(name, cmd string, args ...string) ExtensionEntry {
	return ExtensionEntry{
		Name:    name,
		Type:    TypeStdio,
		Cmd:     cmd,
		Args:    args,
		Envs:    map[string]string{},
		Enabled: true,
	}
}

// normalized fills defaults so an entry serializes the same way whether its
// collections were nil or empty.
func (e ExtensionEntry) normalized() ExtensionEntry {
	if e.Type == "" {
		e.Type = TypeStdio
	}
	if e.Args == nil {
		e.Args = []string{}
	}
	if e.Envs == nil {
		e.Envs = map[string]string{}
	}
	return e
}

//go:embed schema/extension.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("extension.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("extension.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks the entry against the extension schema. Failures wrap
// ErrInvalidEntry and list every offending field.
func (e ExtensionEntry) Validate() error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading extension schema: %w", err)
	}

	raw, err := json.Marshal(e.normalized())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	var issues []string
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, ve.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidEntry, strings.Join(issues, "; "))
}

// collectIssues walks the error tree and records leaf errors as "field: message".
func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	field := strings.Join(ve.InstanceLocation, ".")
	if field == "" {
		field = "entry"
	}
	*issues = append(*issues, field+": "+ve.ErrorKind.LocalizedString(printer))
}
