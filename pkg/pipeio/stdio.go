package pipeio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Stdio reads lines from stdin and writes lines to stdout.
// Stdin is read through a cancelable reader when the platform supports it,
// so Close interrupts a pending ReadLine.
type Stdio struct {
	stdin            io.Reader
	cancellableStdin cancelreader.CancelReader
	lines            *bufio.Reader

	stdout io.Writer
}

// NewStdio wraps the given streams. Nil streams default to os.Stdin and
// os.Stdout.
func NewStdio(stdin io.Reader, stdout io.Writer) *Stdio {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	out := Stdio{
		stdin:  stdin,
		stdout: stdout,
	}

	src := stdin
	if cr, err := cancelreader.NewReader(stdin); err == nil {
		out.cancellableStdin = cr
		src = cr
	}
	out.lines = bufio.NewReader(src)

	return &out
}

// NewStdout returns a Stdio that only prints lines. ReadLine always
// returns io.EOF.
func NewStdout(stdout io.Writer) *Stdio {
	return NewStdio(strings.NewReader(""), stdout)
}

// ReadLine returns the next line from stdin without its line ending.
// A final line without a newline is still returned. Once stdin is exhausted
// or canceled the result is io.EOF.
func (s *Stdio) ReadLine() (string, error) {
	line, err := s.lines.ReadString('\n')
	if errors.Is(err, cancelreader.ErrCanceled) {
		return "", io.EOF
	}
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine prints line followed by a newline to stdout.
func (s *Stdio) WriteLine(line string) (int, error) {
	return io.WriteString(s.stdout, line+"\n")
}

// Interactive reports whether stdin is a terminal.
func (s *Stdio) Interactive() bool {
	return IsTerminal(s.stdin)
}

// Close cancels any pending read from stdin if using a cancelable reader.
// Stdout is left open.
func (s *Stdio) Close() error {
	if s.cancellableStdin != nil {
		s.cancellableStdin.Cancel()
	}
	return nil
}

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
