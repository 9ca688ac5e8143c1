package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/token"
)

// identityKey is unexported so only this package can attach an identity;
// everyone else reads it through IdentityFrom.
type identityKey struct{}

// WithIdentity returns a context carrying the decoded claims as an immutable
// request-scoped value.
func WithIdentity(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, identityKey{}, claims)
}

// IdentityFrom extracts the request identity, if any.
func IdentityFrom(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(identityKey{}).(*token.Claims)
	return claims, ok && claims != nil
}

// Identity is a convenience for handlers working with an echo context.
func Identity(c echo.Context) (*token.Claims, bool) {
	return IdentityFrom(c.Request().Context())
}
