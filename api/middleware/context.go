package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/vidly-backend/pkg/auth"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the caller resolved by Auth, or nil.
func IdentityFromContext(ctx context.Context) *pkgAuth.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*pkgAuth.Identity); ok {
		return v
	}
	return nil
}

func UserIDFromContext(ctx context.Context) string {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.UserID.String()
	}
	return ""
}

// WithIdentity injects an authenticated identity into the context.
func WithIdentity(ctx context.Context, identity *pkgAuth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
