package shell

import (
	"bytes"
	"errors"
	"strings"
)

// Sentinel terminates every response frame when it starts a line.
const Sentinel = "[ADXShell:End]"

// DefaultMaxResponseSize bounds the bytes accumulated for one response.
const DefaultMaxResponseSize = 16 << 20

// ErrResponseTooLarge is returned when a frame exceeds its size bound.
var ErrResponseTooLarge = errors.New("shell response exceeds size limit")

var sentinel = []byte(Sentinel)

// frame accumulates the chunks of one stream until the sentinel line shows
// up. Already-inspected lines are never rescanned.
type frame struct {
	buf []byte
	max int

	// lineStart is the offset of a line whose first bytes still need to be
	// compared with the sentinel, or -1 when the current line is known not
	// to start with it.
	lineStart int
	// scanned is the offset up to which newlines have been searched.
	scanned int
	done    bool
}

func newFrame(max int) *frame {
	if max <= 0 {
		max = DefaultMaxResponseSize
	}
	return &frame{max: max}
}

// write appends a chunk and reports whether the frame is now complete.
// On completion the sentinel and everything after it are discarded.
func (f *frame) write(chunk []byte) (bool, error) {
	if f.done {
		return true, nil
	}
	if len(f.buf)+len(chunk) > f.max {
		return false, ErrResponseTooLarge
	}
	f.buf = append(f.buf, chunk...)
	f.done = f.scan()
	return f.done, nil
}

func (f *frame) scan() bool {
	for {
		if f.lineStart >= 0 {
			rest := f.buf[f.lineStart:]
			if len(rest) < len(sentinel) {
				if bytes.HasPrefix(sentinel, rest) {
					// Possibly a sentinel split across chunks.
					return false
				}
			} else if bytes.HasPrefix(rest, sentinel) {
				f.buf = f.buf[:f.lineStart]
				return true
			}
			f.scanned = max(f.scanned, f.lineStart)
			f.lineStart = -1
		}

		nl := bytes.IndexByte(f.buf[f.scanned:], '\n')
		if nl < 0 {
			f.scanned = len(f.buf)
			return false
		}
		f.lineStart = f.scanned + nl + 1
		f.scanned = f.lineStart
	}
}

// close terminates the frame as if the sentinel had arrived.
func (f *frame) close() {
	f.done = true
}

func (f *frame) empty() bool {
	return len(f.buf) == 0
}

// text returns the accumulated response without its trailing line break.
func (f *frame) text() string {
	return strings.TrimRight(string(f.buf), "\r\n")
}
