package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	testCases := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/goose/config.yaml", filepath.Join(home, ".config/goose/config.yaml")},
		{"/etc/hosts", "/etc/hosts"},
		{"relative/path", "relative/path"},
		{"~user/file", "~user/file"},
	}

	for _, tc := range testCases {
		got, err := ExpandPath(tc.in)
		if err != nil {
			t.Errorf("ExpandPath(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
