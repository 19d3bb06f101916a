// Package attr provides slog attribute helpers shared across modules, plus
// correlation id propagation between message metadata and context.
package attr

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

// CtxKeyCorrelationID is the context key under which the handler wrapper
// stores the inbound message's correlation id.
const CtxKeyCorrelationID ctxKey = "correlation_id"

// String returns a string slog attribute.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an int slog attribute.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Bool returns a bool slog attribute.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Time returns a time slog attribute.
func Time(key string, value time.Time) slog.Attr {
	return slog.Time(key, value)
}

// Any returns an any slog attribute.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error returns an "error" slog attribute, tolerating nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// WithCorrelationID stores a correlation id in the context.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CtxKeyCorrelationID, correlationID)
}

// CorrelationID extracts the correlation id from the context, or "".
func CorrelationID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyCorrelationID).(string); ok {
		return v
	}
	return ""
}

// ExtractCorrelationID returns a slog attribute for the context's correlation
// id so every log line in an operation can be tied back to the interaction
// that triggered it.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}
