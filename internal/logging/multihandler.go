package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler sends each record to the console or log file handler, the
// OTel bridge and Graylog at once. A sink that fails does not stop the
// others; its error is reported after every sink had its turn.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler drops nil sinks, so callers can pass optional ones as is.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			sinks = append(sinks, h)
		}
	}
	return &MultiHandler{handlers: sinks}
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		// sinks may add attributes, each gets its own copy
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) each(derive func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		sinks[i] = derive(h)
	}
	return &MultiHandler{handlers: sinks}
}
