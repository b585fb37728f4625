package client

import (
	"context"
)

var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithContext sets the SessionManager in the given context
func WithContext(ctx context.Context, manager *SessionManager) context.Context {
	return context.WithValue(ctx, sessionCtxKey, manager)
}

// FromContext finds the session manager from the context.
func FromContext(ctx context.Context) (*SessionManager, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(*SessionManager)
	return raw, ok
}
