package log

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Predefine color functions for different log levels
var (
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarnColor    = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	DetailColor  = color.New(color.FgWhite) // For less important details
	DebugColor   = color.New(color.FgHiBlack)
)

// Output streams. Swapped in tests to capture what a command prints.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var verbose bool

// exit is a variable so tests can observe Fatal without terminating.
var exit = os.Exit

// SetVerbose enables Debug output.
func SetVerbose(v bool) {
	verbose = v
}

// Verbose reports whether Debug output is enabled.
func Verbose() bool {
	return verbose
}

// Info prints an informational message (cyan).
func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(Stdout, format+"\n", a...)
}

// Success prints a success message (green).
func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(Stdout, format+"\n", a...)
}

// Warn prints a warning message (yellow) to stderr.
func Warn(format string, a ...interface{}) {
	WarnColor.Fprintf(Stderr, "Warning: "+format+"\n", a...)
}

// Error prints an error message (red) to stderr.
func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(Stderr, "Error: "+format+"\n", a...)
}

// Fatal prints an error message (red) to stderr and exits with status 1.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	exit(1)
}

// Detail prints less important details (usually white/default).
func Detail(format string, a ...interface{}) {
	DetailColor.Fprintf(Stdout, format+"\n", a...)
}

// Debug prints only when verbose output was requested.
func Debug(format string, a ...interface{}) {
	if !verbose {
		return
	}
	DebugColor.Fprintf(Stderr, format+"\n", a...)
}

// Printf allows printing with a specific color.
func Printf(c *color.Color, format string, a ...interface{}) {
	c.Fprintf(Stdout, format, a...)
}
