// Package logging is the logger every friender component receives. Calls take
// the request context first so that fields attached to it with
// ContextWithAttrs (request id, username) end up on every line written while
// serving that request.
package logging

import "context"

// Logger writes leveled records. Trailing args alternate key and value:
//
//	logger.Warn(ctx, "profile photo upload failed", "username", name, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds fields to every record of the returned logger.
	With(args ...any) Logger
}

type ctxAttrsKey struct{}

// ContextWithAttrs returns a copy of ctx carrying args in addition to any
// fields already attached to it.
func ContextWithAttrs(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := AttrsFromContext(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxAttrsKey{}, merged)
}

// AttrsFromContext returns the fields attached with ContextWithAttrs.
func AttrsFromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(ctxAttrsKey{}).([]any)
	return attrs
}

// Nop drops every record.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
