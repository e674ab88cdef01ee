package util

import (
	"os/exec"
	"testing"
)

func useClipboardCommand(t *testing.T, name string, args ...string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
	original := clipboardCommand
	clipboardCommand = func() (*exec.Cmd, error) {
		return exec.Command(name, args...), nil
	}
	t.Cleanup(func() { clipboardCommand = original })
}

func TestReadClipboard(t *testing.T) {
	t.Run("trims output", func(t *testing.T) {
		useClipboardCommand(t, "echo", `  {"mcpServers": {}}  `)
		got, err := ReadClipboard()
		if err != nil {
			t.Fatalf("ReadClipboard failed: %v", err)
		}
		if got != `{"mcpServers": {}}` {
			t.Errorf("ReadClipboard = %q", got)
		}
	})

	t.Run("command fails without output", func(t *testing.T) {
		useClipboardCommand(t, "false")
		if _, err := ReadClipboard(); err == nil {
			t.Error("expected error from failing clipboard command")
		}
	})
}
