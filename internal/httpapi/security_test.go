package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalogadmin/backend/internal/domain"
)

func TestLoginRateLimit(t *testing.T) {
	router := newTestRouter(t)

	// Unknown usernames keep each attempt cheap; the limiter counts them
	// all the same.
	var last int
	for i := 0; i <= loginAttemptLimit; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{Username: "ghost", Password: "nope"})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after %d attempts, got %d", loginAttemptLimit+1, last)
	}
}

func TestAttemptLimiterWindowExpiry(t *testing.T) {
	limiter := newAttemptLimiter(2, 50*time.Millisecond)

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatal("first two attempts should pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("third attempt inside the window should be blocked")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("other keys are not affected")
	}

	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("attempts should pass again after the window expires")
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	router := newTestRouter(t)

	for _, header := range []string{"", "Basic abc123", "Bearer", "bearer token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	router := newTestRouter(t)
	token := loginToken(t, router, "admin", "admin123")

	tampered := token[:len(token)-2] + "xx"
	rec := doJSON(t, router, http.MethodGet, "/api/v1/products", tampered, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rec.Code)
	}
}
