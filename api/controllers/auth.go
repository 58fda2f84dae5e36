package controllers

import (
	"net/http"

	"github.com/angelmondragon/vidly-backend/api/responses"
	"github.com/angelmondragon/vidly-backend/api/validators"
	"github.com/angelmondragon/vidly-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
)

// AuthLogin exchanges email and password for an access token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
