package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns the attributes describing the current run.
// It is called once per record, so the values may change between records.
type ContextProvider func() []slog.Attr

// ContextHandler stamps every record with the run attributes returned by its
// provider. The run attributes always sit at the top level of the record,
// even when the logger was derived with WithGroup, so a grid or sink logger
// still emits a plain run_id.
type ContextHandler struct {
	root     slog.Handler
	provider ContextProvider
	derive   []func(slog.Handler) slog.Handler
}

// NewContextHandler wraps inner. A nil provider adds nothing.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		root:     inner,
		provider: provider,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.root.Enabled(ctx, level)
}

// Handle binds the run attributes on the root handler, replays the
// attributes and groups the logger was derived with, then delegates.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	target := h.root
	if h.provider != nil {
		if attrs := h.provider(); len(attrs) > 0 {
			target = target.WithAttrs(attrs)
		}
	}
	for _, d := range h.derive {
		target = d(target)
	}
	return target.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithAttrs(attrs) })
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithGroup(name) })
}

func (h *ContextHandler) with(d func(slog.Handler) slog.Handler) *ContextHandler {
	derive := make([]func(slog.Handler) slog.Handler, len(h.derive), len(h.derive)+1)
	copy(derive, h.derive)
	return &ContextHandler{
		root:     h.root,
		provider: h.provider,
		derive:   append(derive, d),
	}
}
