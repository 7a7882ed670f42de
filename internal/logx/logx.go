// Package logx provides the verbosity-gated logger used throughout
// modbound, writing to stderr so stdout stays reserved for diagnostic and
// report output (spec.md §6).
package logx

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// VerbosityLevel controls how much a Logger emits.
type VerbosityLevel int

const (
	// VerbosityDefault shows only warnings and errors.
	VerbosityDefault VerbosityLevel = iota
	// VerbosityVerbose adds progress and statistic messages.
	VerbosityVerbose
	// VerbosityDebug adds everything, including per-file diagnostics.
	VerbosityDebug
)

// Logger is the verbosity-gated, optionally colorized logger.
type Logger struct {
	verbosity VerbosityLevel
	writer    io.Writer
	colorize  bool
}

// New creates a Logger writing to os.Stderr at the given verbosity.
// Color is enabled only when stderr is a terminal and CI is not set to
// "true", per spec.md §6.
func New(verbosity VerbosityLevel) *Logger {
	return NewWithWriter(verbosity, os.Stderr)
}

// NewWithWriter creates a Logger writing to w, primarily for tests.
func NewWithWriter(verbosity VerbosityLevel, w io.Writer) *Logger {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) && os.Getenv("CI") != "true"
	}
	return &Logger{verbosity: verbosity, writer: w, colorize: colorize}
}

// Progress logs a high-level progress message, shown at Verbose and above.
func (l *Logger) Progress(format string, args ...interface{}) {
	if l.verbosity < VerbosityVerbose {
		return
	}
	l.print(color.New(color.FgCyan), format, args...)
}

// Statistic logs a count or metric, shown at Verbose and above.
func (l *Logger) Statistic(format string, args ...interface{}) {
	if l.verbosity < VerbosityVerbose {
		return
	}
	l.print(color.New(), format, args...)
}

// Debug logs a diagnostic message, shown only at Debug.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbosity < VerbosityDebug {
		return
	}
	l.print(color.New(color.Faint), format, args...)
}

// Warning always prints, in yellow when colorized.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.print(color.New(color.FgYellow), "warning: "+format, args...)
}

// Error always prints, in red when colorized.
func (l *Logger) Error(format string, args ...interface{}) {
	l.print(color.New(color.FgRed), "error: "+format, args...)
}

func (l *Logger) print(c *color.Color, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.colorize {
		c.EnableColor()
		fmt.Fprintln(l.writer, c.Sprint(msg))
		return
	}
	c.DisableColor()
	fmt.Fprintln(l.writer, msg)
}

// Verbosity returns the logger's configured level.
func (l *Logger) Verbosity() VerbosityLevel {
	return l.verbosity
}

// IsVerbose reports whether Verbose or Debug messages are shown.
func (l *Logger) IsVerbose() bool {
	return l.verbosity >= VerbosityVerbose
}

// IsDebug reports whether Debug messages are shown.
func (l *Logger) IsDebug() bool {
	return l.verbosity >= VerbosityDebug
}
