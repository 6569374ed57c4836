package logger

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger receives formatted output from a validation or build run.
type Logger interface {
	Message(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// Level names the sink a line was written to. It doubles as the CSS class in
// HTML print mode.
type Level string

const (
	LevelMessage Level = "message"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// PrintMode selects plain terminal output or HTML fragments.
type PrintMode string

const (
	ModeText PrintMode = "text"
	ModeHTML PrintMode = "html"
)

// ParsePrintMode maps a settings value to a PrintMode, defaulting to text.
func ParsePrintMode(s string) PrintMode {
	if strings.EqualFold(s, string(ModeHTML)) {
		return ModeHTML
	}
	return ModeText
}

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)

// Option configures a logger built by New.
type Option func(*writerLogger)

// WithMode sets the print mode.
func WithMode(m PrintMode) Option {
	return func(l *writerLogger) { l.mode = m }
}

// WithPrefix overrides the line prefix used in text mode.
func WithPrefix(prefix string) Option {
	return func(l *writerLogger) { l.prefix = prefix }
}

type writerLogger struct {
	mu     sync.Mutex
	out    io.Writer
	mode   PrintMode
	prefix string
	charm  *log.Logger
}

// New returns a Logger writing to w. Text mode renders through
// charmbracelet/log; HTML mode writes one <div class="level"> per line.
func New(w io.Writer, opts ...Option) Logger {
	l := &writerLogger{
		out:    w,
		mode:   ModeText,
		prefix: branding.CLIName(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.charm = log.NewWithOptions(w, log.Options{
		Prefix:          l.prefix,
		ReportTimestamp: false,
		Level:           log.DebugLevel,
	})
	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(colorWarning)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(colorError)
	l.charm.SetStyles(styles)
	return l
}

func (l *writerLogger) Message(format string, args ...any) {
	l.emit(LevelMessage, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Success(format string, args ...any) {
	l.emit(LevelSuccess, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Warning(format string, args ...any) {
	l.emit(LevelWarning, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Error(format string, args ...any) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
}

func (l *writerLogger) emit(level Level, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mode == ModeHTML {
		for _, line := range strings.Split(text, "\n") {
			fmt.Fprintf(l.out, "<div class=\"%s\">%s</div>\n", level, html.EscapeString(line))
		}
		return
	}

	switch level {
	case LevelSuccess:
		l.charm.Print(successStyle.Render(text))
	case LevelWarning:
		l.charm.Warn(text)
	case LevelError:
		l.charm.Error(text)
	default:
		l.charm.Print(text)
	}
}

var (
	defaultMu     sync.Mutex
	defaultLogger Logger
)

// Default returns the process-wide logger, writing text to stderr unless
// replaced with SetDefault.
func Default() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(os.Stderr)
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger. Passing nil restores the
// stderr logger on next use.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// OrDefault returns l, or Default() when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}

// Discard drops everything.
var Discard Logger = discard{}

type discard struct{}

func (discard) Message(string, ...any) {}
func (discard) Success(string, ...any) {}
func (discard) Warning(string, ...any) {}
func (discard) Error(string, ...any)   {}
