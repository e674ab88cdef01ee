package util

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidToolName is returned by ValidateToolName.
var ErrInvalidToolName = errors.New("invalid tool name")

var toolNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

var lower = cases.Lower(language.Und)

// ValidateToolName accepts names made of letters, digits, spaces, hyphens and
// underscores, with at least one non-space character.
func ValidateToolName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidToolName)
	}
	if !toolNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, digits, spaces, '-' and '_'", ErrInvalidToolName, name)
	}
	return nil
}

// nameWords lower-cases name and splits it on whitespace, '-' and '_'.
func nameWords(name string) []string {
	return strings.FieldsFunc(lower.String(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
}

// ToSnakeCase converts "Some Tool" or "some-tool" to "some_tool".
func ToSnakeCase(name string) string {
	return strings.Join(nameWords(name), "_")
}

// ToKebabCase converts "Some Tool" or "some_tool" to "some-tool".
func ToKebabCase(name string) string {
	return strings.Join(nameWords(name), "-")
}
