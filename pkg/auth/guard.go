package auth

import (
	"strings"

	"github.com/angelmondragon/vidly-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/google/uuid"
)

// Identity is the caller resolved from a valid access token.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
	JTI     string
}

// Authenticate resolves the identity carried by a raw access token. Missing,
// malformed and expired tokens all yield an UNAUTHORIZED error.
func Authenticate(cfg config.JWTConfig, rawToken string) (*Identity, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "access denied, no token provided")
	}
	claims, err := ParseAccessToken(cfg, rawToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	return &Identity{
		UserID:  claims.UserID,
		IsAdmin: claims.IsAdmin,
		JTI:     claims.ID,
	}, nil
}

// AuthorizeAdmin checks that an authenticated identity holds the admin flag.
func AuthorizeAdmin(identity *Identity) error {
	if identity == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !identity.IsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin privileges required")
	}
	return nil
}
