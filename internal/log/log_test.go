package log

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func capture(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	originalStdout, originalStderr, originalNoColor := Stdout, Stderr, color.NoColor
	Stdout, Stderr, color.NoColor = stdout, stderr, true
	t.Cleanup(func() {
		Stdout, Stderr, color.NoColor = originalStdout, originalStderr, originalNoColor
		SetVerbose(false)
	})
	return stdout, stderr
}

func TestStreams(t *testing.T) {
	stdout, stderr := capture(t)

	Info("hello %s", "world")
	Warn("careful")
	Error("broken: %d", 42)

	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := stderr.String(); got != "Warning: careful\nError: broken: 42\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestDebugRequiresVerbose(t *testing.T) {
	_, stderr := capture(t)

	Debug("hidden")
	if stderr.Len() != 0 {
		t.Errorf("Debug printed without verbose: %q", stderr.String())
	}

	SetVerbose(true)
	Debug("shown")
	if got := stderr.String(); got != "shown\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestFatalExits(t *testing.T) {
	_, stderr := capture(t)
	code := -1
	originalExit := exit
	exit = func(c int) { code = c }
	defer func() { exit = originalExit }()

	Fatal("giving up")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if got := stderr.String(); got != "Error: giving up\n" {
		t.Errorf("stderr = %q", got)
	}
}
