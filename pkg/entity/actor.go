package entity

import "context"

// actorKey is used to store the acting user in context.
type actorKey struct{}

// WithActor returns a context carrying the acting user, consumed by the
// fill engine for creator/modifier columns.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// Actor returns the acting user from the context, or "" when absent.
func Actor(ctx context.Context) string {
	if a, ok := ctx.Value(actorKey{}).(string); ok {
		return a
	}
	return ""
}
