package socket

import (
	"fmt"
)

// LineWindow is the most ReadLine looks at in one call. A line longer than
// LineWindow-2 bytes cannot be read.
const LineWindow = 4096

// ReadLine reads one line from the peer without consuming anything past it.
//
// It peeks at up to LineWindow queued bytes, looks for the first two
// end-of-line bytes ('\r' or '\n', in any mix) and then consumes exactly
// through the second one. The returned text is everything before the first
// marker. If no data is available the result is "". If the window holds
// fewer than two markers the call fails with ErrLineNotFound and nothing is
// consumed.
func (s *Socket) ReadLine() (string, error) {
	buf := make([]byte, LineWindow)

	n, err := s.Read(buf, true)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	first, end, found := scanLine(buf[:n])
	if found < 2 {
		return "", newError("read line", KindFraming,
			fmt.Errorf("%w: %d of 2 end-of-line markers in %d bytes", ErrLineNotFound, found, n))
	}

	m, err := s.Read(buf[:end], false)
	if err != nil {
		return "", err
	}
	if m < end {
		return "", newError("read line", KindIO, fmt.Errorf("consumed %d of %d peeked bytes", m, end))
	}

	return string(buf[:first]), nil
}

// WriteLine sends line followed by CRLF and returns the number of bytes the
// OS accepted.
func (s *Socket) WriteLine(line string) (int, error) {
	return s.Write([]byte(line + "\r\n"))
}

// scanLine finds the first two end-of-line bytes in b. first is the index
// of the first marker, end the index just past the second one and found the
// number of markers seen (at most 2).
func scanLine(b []byte) (first, end, found int) {
	for i, c := range b {
		if c != '\r' && c != '\n' {
			continue
		}

		found++
		if found == 1 {
			first = i
		}
		if found == 2 {
			return first, i + 1, found
		}
	}
	return first, 0, found
}
