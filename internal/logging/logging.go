package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures New.
type Options struct {
	Level  string    // trace, debug, info, warn, error; default info
	Format string    // console (default) or json
	Writer io.Writer // default os.Stderr
}

// New returns a logger writing to stderr unless Options.Writer says
// otherwise. Stdout is never used: it carries MCP stdio framing.
func New(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = "info"
	}

	logger := &log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
	}
	if strings.EqualFold(opts.Format, FormatJSON) {
		logger.TimeFormat = ""
		logger.Writer = &log.IOWriter{Writer: w}
	} else {
		logger.Writer = &log.ConsoleWriter{Writer: w, EndWithMessage: true}
	}
	return logger
}

// Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *log.Logger) *log.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// WithRequestID returns a copy of l whose entries carry request_id.
func WithRequestID(l *log.Logger, id string) *log.Logger {
	child := *OrNop(l)
	child.Context = log.NewContext(append([]byte(nil), child.Context...)).Str("request_id", id).Value()
	return &child
}
