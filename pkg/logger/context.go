package logger

import "context"

type correlationKey struct{}

// WithCorrelationID stores the request correlation id in ctx so services can
// attach it to their log events without seeing the HTTP layer.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation id stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
