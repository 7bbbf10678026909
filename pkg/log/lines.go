package log

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// LineReadWriter is the line-framed half of a socket handle.
type LineReadWriter interface {
	ReadLine() (string, error)
	WriteLine(line string) (int, error)
}

// LoggedLines wraps a LineReadWriter and appends every line read from or
// written to it to a transcript file. Incoming lines are prefixed with "< ",
// outgoing lines with "> ".
type LoggedLines struct {
	lines   LineReadWriter
	logFile *os.File
	mu      sync.Mutex
}

// NewLoggedLines wraps lines to record a transcript at logFilePath.
// The file is created or appended to.
func NewLoggedLines(lines LineReadWriter, logFilePath string) (*LoggedLines, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &LoggedLines{lines: lines, logFile: logFile}, nil
}

// ReadLine reads a line from the wrapped handle and records it.
// Empty results are not recorded since they signal that no data was available.
// If only the transcript fails, the line is still returned along with the
// error.
func (ll *LoggedLines) ReadLine() (string, error) {
	line, err := ll.lines.ReadLine()
	if err != nil || line == "" {
		return line, err
	}
	if err := ll.record("< ", line); err != nil {
		return line, fmt.Errorf("recording read line: %w", err)
	}
	return line, nil
}

// WriteLine writes a line to the wrapped handle and records it if any byte
// was sent. The byte count always reflects what the handle sent.
func (ll *LoggedLines) WriteLine(line string) (int, error) {
	n, err := ll.lines.WriteLine(line)
	if n > 0 {
		if lerr := ll.record("> ", line); lerr != nil {
			return n, errors.Join(err, fmt.Errorf("recording written line: %w", lerr))
		}
	}
	return n, err
}

// Close closes the transcript file. The wrapped handle is left open.
func (ll *LoggedLines) Close() error {
	return ll.logFile.Close()
}

func (ll *LoggedLines) record(prefix, line string) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	_, err := fmt.Fprintf(ll.logFile, "%s%s\n", prefix, line)
	return err
}
