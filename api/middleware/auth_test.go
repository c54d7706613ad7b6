package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/pokeverse/pokeverse-backend/pkg/auth"
	"github.com/pokeverse/pokeverse-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pokeverse-test",
		SessionTTLMinutes: 60,
		ResetTTLMinutes:   10080,
		VerifyTTLMinutes:  10080,
	}
}

func TestAuthMissingHeaderIsUnauthorized(t *testing.T) {
	cfg := testJWTConfig()
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/getTeams", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthInvalidTokenIsForbidden(t *testing.T) {
	cfg := testJWTConfig()
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/getTeams", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthValidTokenSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	accountID := uuid.New()
	token, err := pkgauth.MintSessionToken(cfg, time.Now().UTC(), accountID, "ash")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotAccountID, gotUsername string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccountID = AccountIDFromContext(r.Context())
		gotUsername = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/getTeams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotAccountID != accountID.String() {
		t.Fatalf("expected account id %s, got %q", accountID, gotAccountID)
	}
	if gotUsername != "ash" {
		t.Fatalf("expected username ash, got %q", gotUsername)
	}
}

func TestAuthRejectsResetTokenOnSessionRoute(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgauth.MintResetToken(cfg, time.Now().UTC(), "ash@example.com", "ash")
	if err != nil {
		t.Fatalf("mint reset token: %v", err)
	}

	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("reset token must not open a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/getTeams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
