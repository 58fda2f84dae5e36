package auth

import (
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/google/uuid"
)

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	valid, err := MintAccessToken(testJWTConfig, time.Now(), AccessTokenPayload{UserID: userID})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	expired, err := MintAccessToken(testJWTConfig, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: userID})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	identity, err := Authenticate(testJWTConfig, valid)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.UserID != userID || identity.IsAdmin {
		t.Fatalf("unexpected identity %+v", identity)
	}

	for name, raw := range map[string]string{
		"missing":   "  ",
		"malformed": "not.a.jwt",
		"expired":   expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Authenticate(testJWTConfig, raw)
			if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestAuthorizeAdmin(t *testing.T) {
	if err := AuthorizeAdmin(&Identity{UserID: uuid.New(), IsAdmin: true}); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
	if err := AuthorizeAdmin(&Identity{UserID: uuid.New()}); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := AuthorizeAdmin(nil); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
