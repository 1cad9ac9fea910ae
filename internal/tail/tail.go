// Package tail follows a growing text file the way tail -f does, keeping the
// most recent lines in a bounded buffer.
package tail

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tailer drains newly appended lines from an open file once per tick. It
// never blocks: a drain reads whatever is available and stops at end of file.
type Tailer struct {
	path    string
	f       *os.File
	r       *bufio.Reader
	lines   []string
	max     int
	partial string
}

// Open opens path and seeks to the end, so content written before startup is
// not replayed. max bounds the retained line count.
func Open(path string, max int) (*Tailer, error) {
	if max < 1 {
		max = 1
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tail file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek tail file: %w", err)
	}
	return &Tailer{
		path: path,
		f:    f,
		r:    bufio.NewReader(f),
		max:  max,
	}, nil
}

// Drain reads every complete line currently available, strips trailing CR/LF,
// and reports whether anything new arrived. A trailing fragment without its
// newline is held back until a later drain completes it. Hitting end of file
// is the normal resting state between writes, never a terminal condition: the
// next Drain sees whatever the writer appended since.
func (t *Tailer) Drain() bool {
	updated := false
	for {
		chunk, err := t.r.ReadString('\n')
		if len(chunk) > 0 {
			t.partial += chunk
			if strings.HasSuffix(chunk, "\n") {
				t.push(strings.TrimRight(t.partial, "\r\n"))
				t.partial = ""
				updated = true
			}
		}
		if err != nil {
			return updated
		}
	}
}

// push evicts the oldest line once the buffer is full.
func (t *Tailer) push(line string) {
	if len(t.lines) >= t.max {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:len(t.lines)-1]
	}
	t.lines = append(t.lines, line)
}

// Lines returns the buffered lines, oldest first.
func (t *Tailer) Lines() []string { return t.lines }

// Path returns the watched file's path.
func (t *Tailer) Path() string { return t.path }

// Close releases the underlying file.
func (t *Tailer) Close() error { return t.f.Close() }
