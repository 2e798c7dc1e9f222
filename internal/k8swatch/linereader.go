package k8swatch

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// lineReader reads exactly one UTF-8 line per call, never ranging ahead past
// the next newline other than what bufio.Reader buffers internally to find
// it — which is also what peekExhausted inspects to check whether the
// stream still has data waiting.
type lineReader struct {
	r      *bufio.Reader
	closer io.Closer
}

func newLineReader(rc io.ReadCloser) *lineReader {
	return &lineReader{r: bufio.NewReader(rc), closer: rc}
}

func (l *lineReader) Close() error {
	return l.closer.Close()
}

// peekExhausted reports whether the underlying stream has no more bytes to
// offer without blocking indefinitely on a truly idle-but-alive connection:
// Peek only returns early with io.EOF once the remote has actually closed
// its side, never on a merely-quiet keep-alive.
func (l *lineReader) peekExhausted() bool {
	_, err := l.r.Peek(1)
	return errors.Is(err, io.EOF)
}

// readLine reads and returns one line with its terminator stripped. An
// exhausted body is reported as errNullResponse ("I/O error: Null response
// from the server.").
func (l *lineReader) readLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				return "", errNullResponse
			}
			return line, nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
