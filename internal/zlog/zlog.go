// Package zlog is the ambient logging wrapper used by the CLI driver
// and internal/pipeline, grounded on devlog's internal/logger: a
// thin *slog.Logger wrapper with a compact human-readable handler and
// a JSON handler for machine consumption. Core packages (pkgs/...)
// never import zlog: spec.md section 5 requires them to stay pure,
// synchronous functions with no I/O of their own.
package zlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Logger embeds *slog.Logger so callers can use the familiar
// Info/Warn/Error/Debug API directly.
type Logger struct {
	*slog.Logger
}

// New builds a human-readable logger, one line per record, for
// interactive terminal use.
func New(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(newCompactHandler(w, level))}
}

// NewJSON builds a structured logger for machine consumption (CI logs,
// log aggregation), matching the `--json-logs` CLI flag.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// compactHandler renders "HH:MM:SS [LEVEL] message key=value ..." lines.
type compactHandler struct {
	writer io.Writer
	level  slog.Level
	attrs  []slog.Attr
	mu     *sync.Mutex
}

func newCompactHandler(w io.Writer, level slog.Level) *compactHandler {
	return &compactHandler{writer: w, level: level, mu: &sync.Mutex{}}
}

func (h *compactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *compactHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.writer, "%s [%s] %s", r.Time.Format("15:04:05"), r.Level, r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(h.writer, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.writer, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.writer)
	return nil
}

func (h *compactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &compactHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
		mu:     h.mu,
	}
}

func (h *compactHandler) WithGroup(_ string) slog.Handler {
	return h
}
