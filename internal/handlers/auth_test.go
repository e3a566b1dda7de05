package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atlascmdb/atlas/internal/middleware"
)

func setupAuth(t *testing.T) (*http.ServeMux, *middleware.JWTAuthMiddleware) {
	t.Helper()

	hash, err := middleware.HashPassword("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	jwtAuth := middleware.NewJWTAuthMiddleware(&middleware.JWTAuthConfig{
		Enabled:           true,
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
		JWTSecret:         "test-secret",
		JWTExpiryHours:    24,
		SkipPaths:         []string{"/health", "/auth/login"},
	})

	mux := http.NewServeMux()
	NewAuthHandler(jwtAuth).SetupRoutes(mux)
	return mux, jwtAuth
}

func TestLogin_Success(t *testing.T) {
	mux, jwtAuth := setupAuth(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"admin","password":"secret123"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	if resp.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", resp.Username)
	}
	if resp.ExpiresIn != 24*60*60 {
		t.Errorf("expires_in = %d, want %d from the configured 24h expiry", resp.ExpiresIn, 24*60*60)
	}

	claims, err := jwtAuth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token must validate: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("token username = %q", claims.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	mux, _ := setupAuth(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	mux, _ := setupAuth(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"admin"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password") {
		t.Errorf("expected password field error, got %s", rec.Body.String())
	}
}

func TestLogin_GetNotAllowed(t *testing.T) {
	mux, _ := setupAuth(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/login", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestVerify_Authenticated(t *testing.T) {
	mux, jwtAuth := setupAuth(t)
	token, err := jwtAuth.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Verify sits behind the auth middleware in production.
	wrapped := jwtAuth.Wrap(mux)

	req := httptest.NewRequest("GET", "/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	if resp["valid"] != true || resp["username"] != "admin" {
		t.Errorf("unexpected verify response: %v", resp)
	}
}

func TestVerify_Unauthenticated(t *testing.T) {
	mux, _ := setupAuth(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/verify", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without context user, got %d", rec.Code)
	}
}
