package middleware

import (
	"net/http"

	"github.com/angelmondragon/vidly-backend/api/responses"
	pkgAuth "github.com/angelmondragon/vidly-backend/pkg/auth"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
)

// RequireAdmin rejects callers whose identity lacks the admin flag. It must
// run after Auth.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := pkgAuth.AuthorizeAdmin(IdentityFromContext(r.Context())); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
