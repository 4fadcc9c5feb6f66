package inventoryapi

import "context"

type contextKey string

const tokenContextKey contextKey = "bearer_token"

// WithToken stores the caller's bearer token in the context. The gateway
// forwards it verbatim on every remote call; this service never holds
// credentials of its own.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext retrieves the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}
