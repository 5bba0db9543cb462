// internal/pkg/logger/handlers.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// ContextHandler copies request-scoped values out of the context onto
// every log record passing through it.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler creates a handler that enriches logs with context values
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	extra := extractContextAttrs(ctx, contextKeys())
	if len(extra) == 0 {
		return h.handler.Handle(ctx, record)
	}
	return h.handler.Handle(ctx, cloneWith(record, extra))
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

// cloneWith rebuilds a record with extra attrs appended, since
// slog.Record attrs cannot be mutated in place.
func cloneWith(record slog.Record, extra []slog.Attr) slog.Record {
	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(a)
		return true
	})
	out.AddAttrs(extra...)
	return out
}

const redactedValue = "***REDACTED***"

var redactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|pwd|pass|secret|token|key|auth|jwt|bearer|api[-_]?key)\s*[:=]\s*["']?([^"'\s]+)`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`), // email
	regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`),                         // card number
}

var sensitiveKeys = []string{
	"password", "pwd", "secret", "token", "auth", "jwt", "api_key",
}

// SanitizationHandler masks credential-looking values before they hit
// the log sink.
type SanitizationHandler struct {
	handler slog.Handler
}

// NewSanitizationHandler creates a handler that sanitizes sensitive data
func NewSanitizationHandler(handler slog.Handler) *SanitizationHandler {
	return &SanitizationHandler{handler: handler}
}

func (h *SanitizationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SanitizationHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, scrub(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(scrubAttr(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

func (h *SanitizationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SanitizationHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *SanitizationHandler) WithGroup(name string) slog.Handler {
	return &SanitizationHandler{handler: h.handler.WithGroup(name)}
}

func scrubAttr(attr slog.Attr) slog.Attr {
	key := strings.ToLower(attr.Key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			attr.Value = slog.StringValue(redactedValue)
			return attr
		}
	}

	if s, ok := attr.Value.Any().(string); ok {
		attr.Value = slog.StringValue(scrub(s))
	}
	return attr
}

func scrub(s string) string {
	for _, pattern := range redactPatterns {
		s = pattern.ReplaceAllString(s, "$1="+redactedValue)
	}
	return s
}

const (
	ansiReset  = "\033[0m"
	ansiGray   = "\033[37m"
	ansiBlue   = "\033[34m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiCyan   = "\033[36m"
)

// PrettyTextHandler writes colored, aligned lines for the development
// console. Not for production use.
type PrettyTextHandler struct {
	*slog.TextHandler
	mu sync.Mutex
	w  io.Writer
}

// NewPrettyTextHandler creates a pretty text handler
func NewPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyTextHandler {
	return &PrettyTextHandler{
		TextHandler: slog.NewTextHandler(w, opts),
		w:           w,
	}
}

func (h *PrettyTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder

	level := strings.ToUpper(r.Level.String())
	fmt.Fprintf(&b, "%s%s %s%s%*s%s",
		levelColor(r.Level),
		r.Time.Format("2006-01-02 15:04:05.000"),
		level,
		ansiReset,
		8-len(level), " ",
		r.Message,
	)

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s%s=%v%s", ansiCyan, a.Key, a.Value, ansiReset)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiBlue
	default:
		return ansiGray
	}
}
