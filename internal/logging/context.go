package logging

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
)

// Request carries the per-request fields attached to log records.
type Request struct {
	ID     string
	Method string
	Path   string
}

type requestKey struct{}

func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

func RequestFrom(ctx context.Context) (Request, bool) {
	req, ok := ctx.Value(requestKey{}).(Request)
	return req, ok
}

// ContextHandler adds request_id, method, path and user_id from the context
// to records logged with the *Context slog functions.
type ContextHandler struct {
	next slog.Handler
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if ctx != nil {
		if req, ok := RequestFrom(ctx); ok {
			record.AddAttrs(
				slog.String("request_id", req.ID),
				slog.String("method", req.Method),
				slog.String("path", req.Path),
			)
		}
		if user, err := identity.FromContext(ctx); err == nil && !hasAttr(record, "user_id") {
			record.AddAttrs(slog.String("user_id", user.ID.String()))
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}

func hasAttr(record slog.Record, key string) bool {
	found := false
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
