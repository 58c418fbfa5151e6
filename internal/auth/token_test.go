package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"))

	token, err := manager.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	username, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if username != "alice" {
		t.Fatalf("subject = %q, want alice", username)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager([]byte("secret-a")).Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewTokenManager([]byte("secret-b")).Verify(token); err == nil {
		t.Fatalf("expected verification failure for wrong secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"))
	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	manager.now = func() time.Time { return issuedAt }
	token, err := manager.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	if _, err := manager.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"))
	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Fatalf("expected garbage token to be rejected")
	}
}

func TestMiddlewareRejectsWithoutCookie(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"))
	called := false
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores", nil))

	if called {
		t.Fatalf("protected handler ran without a cookie")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "unauthorized" {
		t.Fatalf("error payload = %q", payload["error"])
	}
}

func TestMiddlewareInjectsOwner(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"))
	token, err := manager.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	var gotOwner string
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := OwnerFromContext(r.Context())
		if !ok {
			t.Fatalf("owner missing from context")
		}
		gotOwner = owner
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/scores", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotOwner != "alice" {
		t.Fatalf("owner = %q, want alice", gotOwner)
	}
}

func TestMiddlewareRejectsTamperedToken(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"))
	token, err := manager.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("protected handler ran with tampered token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/scores", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token + "x"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
