package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one line captured by a Recorder.
type Entry struct {
	Level Level
	Text  string
}

// Recorder keeps every line in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Message(format string, args ...any) { r.add(LevelMessage, format, args) }
func (r *Recorder) Success(format string, args ...any) { r.add(LevelSuccess, format, args) }
func (r *Recorder) Warning(format string, args ...any) { r.add(LevelWarning, format, args) }
func (r *Recorder) Error(format string, args ...any)   { r.add(LevelError, format, args) }

func (r *Recorder) add(level Level, format string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Text: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of the captured lines.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Texts returns the text of every line written to level.
func (r *Recorder) Texts(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Text)
		}
	}
	return out
}

// Contains reports whether any line at level contains substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, text := range r.Texts(level) {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}
