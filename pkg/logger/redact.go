package logger

import (
	"context"
	"log/slog"
)

// Redacted replaces the value of every masked field.
const Redacted = "***"

// RedactHandler wraps a slog.Handler and masks the values of configured
// attribute keys. Masking happens per log call, so the set of fields is
// fixed at construction and the hot path stays allocation-light for
// records without masked attributes.
type RedactHandler struct {
	next   slog.Handler
	fields map[string]struct{}
}

// NewRedactHandler creates a handler that masks the given attribute keys.
// Group attributes are walked recursively so nested PII is caught too.
func NewRedactHandler(next slog.Handler, fields ...string) *RedactHandler {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &RedactHandler{next: next, fields: set}
}

func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RedactHandler) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.fields) == 0 || rec.NumAttrs() == 0 {
		return h.next.Handle(ctx, rec)
	}

	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(h.redact(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		masked[i] = h.redact(attr)
	}
	return &RedactHandler{next: h.next.WithAttrs(masked), fields: h.fields}
}

func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{next: h.next.WithGroup(name), fields: h.fields}
}

func (h *RedactHandler) redact(attr slog.Attr) slog.Attr {
	if _, ok := h.fields[attr.Key]; ok {
		return slog.String(attr.Key, Redacted)
	}
	if attr.Value.Kind() == slog.KindGroup {
		members := attr.Value.Group()
		masked := make([]slog.Attr, len(members))
		for i, member := range members {
			masked[i] = h.redact(member)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(masked...)}
	}
	return attr
}
