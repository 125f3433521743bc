package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SwapHandler is a slog.Handler whose destination can be replaced while
// loggers built on it are in use. Attributes and groups added through
// With and WithGroup are reapplied to the current destination.
type SwapHandler struct {
	dst   *atomic.Pointer[slog.Handler]
	steps []func(slog.Handler) slog.Handler
}

// NewSwapHandler returns a SwapHandler writing to h.
func NewSwapHandler(h slog.Handler) *SwapHandler {
	dst := new(atomic.Pointer[slog.Handler])
	dst.Store(&h)
	return &SwapHandler{dst: dst}
}

// Swap sends every logger built on s, and on handlers derived from it, to h.
func (s *SwapHandler) Swap(h slog.Handler) {
	s.dst.Store(&h)
}

func (s *SwapHandler) current() slog.Handler {
	h := *s.dst.Load()
	for _, step := range s.steps {
		h = step(h)
	}
	return h
}

func (s *SwapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.current().Enabled(ctx, level)
}

func (s *SwapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *SwapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *SwapHandler) WithGroup(name string) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *SwapHandler) with(step func(slog.Handler) slog.Handler) *SwapHandler {
	steps := make([]func(slog.Handler) slog.Handler, len(s.steps), len(s.steps)+1)
	copy(steps, s.steps)
	return &SwapHandler{dst: s.dst, steps: append(steps, step)}
}
