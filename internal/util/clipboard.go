package util

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardCommand returns the platform command that prints the clipboard.
var clipboardCommand = func() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbpaste"), nil
	case "linux":
		return exec.Command("xclip", "-selection", "clipboard", "-o"), nil
	case "windows":
		return exec.Command("powershell.exe", "-command", "Get-Clipboard"), nil
	default:
		return nil, fmt.Errorf("clipboard is not supported on %s", runtime.GOOS)
	}
}

// ReadClipboard returns the trimmed text content of the system clipboard.
func ReadClipboard() (string, error) {
	cmd, err := clipboardCommand()
	if err != nil {
		return "", err
	}

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if len(out) > 0 {
				return strings.TrimSpace(string(out)), nil
			}
			return "", fmt.Errorf("clipboard command failed: %w", err)
		}
		return "", fmt.Errorf("failed to execute clipboard command: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
