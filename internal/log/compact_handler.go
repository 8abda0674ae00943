package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the number of runes kept from a string attribute
// value before it is shortened.
const DefaultMaxValueLen = 96

// ellipsis is appended to shortened values.
const ellipsis = "…"

// CompactHandler wraps an slog.Handler and shortens string attribute values
// longer than maxLen runes before passing records on.
type CompactHandler struct {
	// handler is the underlying slog handler that receives compacted records.
	handler slog.Handler

	// maxLen is the maximum number of runes kept per string value.
	maxLen int
}

// NewCompactHandler creates a CompactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A maxLen of zero or
// less selects DefaultMaxValueLen.
func NewCompactHandler(handler slog.Handler, maxLen int) *CompactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &CompactHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the underlying handler handles records at the given level.
func (h *CompactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it to the underlying handler.
func (h *CompactHandler) Handle(ctx context.Context, r slog.Record) error {
	compacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new handler with the given attributes, shortened, added.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compacted[i] = h.compactAttr(a)
	}
	return &CompactHandler{handler: h.handler.WithAttrs(compacted), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return &CompactHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// compactAttr shortens a single attribute, recursing into groups.
func (h *CompactHandler) compactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		compacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			compacted[i] = h.compactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compacted...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Shorten(a.Value.String(), h.maxLen))
	}

	return a
}

// Shorten returns s unchanged if it has at most maxLen runes; otherwise it
// returns the first maxLen runes followed by an ellipsis.
func Shorten(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}

// NewLogger creates a text slog.Logger wrapped in a CompactHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewTextHandler(w, handlerOptions(verbose)), DefaultMaxValueLen))
}

// NewJSONLogger creates a JSON slog.Logger wrapped in a CompactHandler.
// Useful when log output is collected by a log aggregator.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), DefaultMaxValueLen))
}

// handlerOptions maps the verbose flag to a level.
func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
