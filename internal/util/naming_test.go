package util

import (
	"errors"
	"testing"
)

func TestValidateToolName(t *testing.T) {
	valid := []string{"valid-name", "valid_name", "Valid Name 123"}
	for _, name := range valid {
		if err := ValidateToolName(name); err != nil {
			t.Errorf("ValidateToolName(%q) returned error: %v", name, err)
		}
	}

	invalid := []string{"", "   ", "invalid@name", "name with $ symbol", "../escape"}
	for _, name := range invalid {
		err := ValidateToolName(name)
		if !errors.Is(err, ErrInvalidToolName) {
			t.Errorf("ValidateToolName(%q) = %v, want ErrInvalidToolName", name, err)
		}
	}
}

func TestCaseConversion(t *testing.T) {
	testCases := []struct {
		in        string
		wantSnake string
		wantKebab string
	}{
		{"Hello World", "hello_world", "hello-world"},
		{"hello-world", "hello_world", "hello-world"},
		{"Hello_World", "hello_world", "hello-world"},
		{" Spaces  Around ", "spaces_around", "spaces-around"},
		{"AwesomeTool", "awesometool", "awesometool"},
		{"Some Tool", "some_tool", "some-tool"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ToSnakeCase(tc.in); got != tc.wantSnake {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tc.in, got, tc.wantSnake)
			}
			if got := ToKebabCase(tc.in); got != tc.wantKebab {
				t.Errorf("ToKebabCase(%q) = %q, want %q", tc.in, got, tc.wantKebab)
			}
		})
	}
}
