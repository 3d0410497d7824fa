package authctx

import "context"

type ctxKey string

const keyCaller ctxKey = "caller"

// WithCaller records who is acting, for layers below the HTTP handlers.
// Roles stay with the HTTP middlewares; deeper layers only care about who.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, keyCaller, caller)
}

func CallerFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyCaller).(string)

	return v, ok && v != ""
}
