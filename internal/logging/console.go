package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ConsoleHandler renders records as single colored lines:
//
//	15:04:05 INFO: quiz finished score=4 total=5
type ConsoleHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Level
	prefix string
	group  string
}

// NewConsoleHandler returns a handler writing to out, dropping records
// below level.
func NewConsoleHandler(out io.Writer, level slog.Level) *ConsoleHandler {
	return &ConsoleHandler{mu: &sync.Mutex{}, out: out, level: level}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(levelString(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(h.formatAttr(a))
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, b.String())
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	for _, a := range attrs {
		next.prefix += h.formatAttr(a)
	}
	return &next
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = h.group + name + "."
	return &next
}

func (h *ConsoleHandler) formatAttr(a slog.Attr) string {
	return " " + color.GreenString(h.group+a.Key) + "=" + fmt.Sprint(a.Value.Resolve().Any())
}

func levelString(l slog.Level) string {
	s := l.String() + ":"
	switch {
	case l >= slog.LevelError:
		return color.RedString(s)
	case l >= slog.LevelWarn:
		return color.YellowString(s)
	case l >= slog.LevelInfo:
		return color.HiBlueString(s)
	default:
		return color.MagentaString(s)
	}
}
