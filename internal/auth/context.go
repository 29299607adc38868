package auth

import "context"

type ctxKey string

const ctxKeyClaims ctxKey = "claims"

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

func ClaimsFromContext(ctx context.Context) *Claims {
	if v := ctx.Value(ctxKeyClaims); v != nil {
		if c, ok := v.(*Claims); ok {
			return c
		}
	}
	return nil
}

func SubjectFromContext(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.Sub
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.Role
	}
	return ""
}
