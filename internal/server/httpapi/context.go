package httpapi

import (
	"context"

	"github.com/dmitrijs2005/eventboard/internal/server/auth"
)

type ctxKey struct{ name string }

var claimsKey = &ctxKey{name: "claims"}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims the Authenticate middleware attached.
// Handlers behind the middleware trust them as-is and must not re-verify.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
