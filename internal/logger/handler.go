// Package logger provides a colored, human-oriented slog handler for
// development consoles. Production deployments can swap in slog's JSON
// handler without touching call sites.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const ansiReset = "\033[0m"

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\033[35m", // purple
	slog.LevelInfo:  "\033[32m", // green
	slog.LevelWarn:  "\033[33m", // yellow
	slog.LevelError: "\033[31m", // red
}

const (
	colorGray = "\033[37m"
	colorCyan = "\033[36m"
	colorText = "\033[97m"
)

type PrettyHandler struct {
	opts  slog.HandlerOptions
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

func NewPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: *opts, out: out, mu: new(sync.Mutex)}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, record slog.Record) error {
	var line strings.Builder

	line.WriteString(colorGray)
	line.WriteString(record.Time.Format("15:04:05.000"))
	line.WriteString(ansiReset)

	levelColor, ok := levelColors[record.Level]
	if !ok {
		levelColor = colorText
	}
	fmt.Fprintf(&line, " %s%-5s%s", levelColor, record.Level.String(), ansiReset)

	line.WriteString(" ")
	line.WriteString(colorText)
	line.WriteString(record.Message)
	line.WriteString(ansiReset)

	for _, attr := range h.attrs {
		h.appendAttr(&line, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(&line, attr)
		return true
	})
	line.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line.String())
	return err
}

func (h *PrettyHandler) appendAttr(line *strings.Builder, attr slog.Attr) {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	value := attr.Value.Any()
	if t, ok := value.(time.Time); ok {
		value = t.Format(time.RFC3339)
	}

	fmt.Fprintf(line, " %s%s%s=%v", colorCyan, key, ansiReset, value)
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}
