package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/vidly-backend/api/responses"
	pkgAuth "github.com/angelmondragon/vidly-backend/pkg/auth"
	"github.com/angelmondragon/vidly-backend/pkg/config"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
)

// TokenHeader carries the access token; Authorization: Bearer is accepted as a fallback.
const TokenHeader = "x-auth-token"

// Auth validates the access token and seeds the request context with the caller identity.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := pkgAuth.Authenticate(cfg, tokenFromRequest(r))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  identity.UserID.String(),
					"is_admin": identity.IsAdmin,
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
