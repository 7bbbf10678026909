// Package log provides logging utilities including colored console output
// and line transcript logging.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// ErrorMsg prints an error message to stderr in red color.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// Logger carries the verbosity setting so that library code can emit
// debug output without consulting global state.
// A nil *Logger is valid: it prints info and error messages but never
// verbose ones. A Logger may be shared between goroutines; messages are
// written to the underlying writer one at a time.
type Logger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex
}

// NewLogger returns a Logger writing to stderr.
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose, out: os.Stderr}
}

// NewLoggerTo returns a Logger writing to w instead of stderr.
func NewLoggerTo(w io.Writer, verbose bool) *Logger {
	return &Logger{verbose: verbose, out: w}
}

func (l *Logger) print(p func(io.Writer, string, ...interface{}), format string, a ...interface{}) {
	if l == nil {
		p(os.Stderr, format, a...)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if out == nil {
		out = os.Stderr
	}
	p(out, format, a...)
}

// Verbose reports whether verbose messages are printed.
func (l *Logger) Verbose() bool {
	return l != nil && l.verbose
}

// InfoMsg prints an informational message in blue color.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	l.print(blue, "[+] "+format, a...)
}

// ErrorMsg prints an error message in red color.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	l.print(red, "[!] Error: "+format, a...)
}

// VerboseMsg prints a debug message in yellow, only in verbose mode.
// A trailing newline is added.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if !l.Verbose() {
		return
	}
	l.print(yellow, "[v] "+format+"\n", a...)
}
