package logger

import (
	"context"
	"log/slog"
)

type entityIDKey struct{}

// WithEntityID stores the identifier of the entity being processed in ctx.
// Loggers built by New add it to every record logged with that context.
func WithEntityID(ctx context.Context, id any) context.Context {
	return context.WithValue(ctx, entityIDKey{}, id)
}

// EntityIDFromContext returns the identifier stored by WithEntityID.
func EntityIDFromContext(ctx context.Context) (any, bool) {
	id := ctx.Value(entityIDKey{})
	return id, id != nil
}

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

func entityIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := EntityIDFromContext(ctx); ok {
		return EntityID(id), true
	}
	return slog.Attr{}, false
}

// contextHandler adds attributes pulled from the record's context before
// delegating to next.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: extractors}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
