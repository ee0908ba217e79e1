package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/handler"
	"github.com/msomdec/course-api/internal/service"
)

// okHandler echoes the claims it sees.
func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := handler.ClaimsFromContext(r.Context())
		if !ok {
			t.Error("next handler ran without claims")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": claims.UserID, "role": string(claims.Role)})
	})
}

func studentToken(t *testing.T, svc *testServices) (string, domain.Claims) {
	t.Helper()
	res, err := svc.auth.Register(context.Background(), service.RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	claims, err := svc.tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return res.Token, claims
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svc := newTestServices(t)
	token, claims := studentToken(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(svc.tokens, okHandler(t)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["userId"] != claims.UserID || body["role"] != string(domain.RoleStudent) {
		t.Fatalf("unexpected claims in context: %v", body)
	}
}

func TestRequireAuth_RejectsUniformly(t *testing.T) {
	svc := newTestServices(t)
	token, _ := studentToken(t, svc)
	other := service.NewTokenService("some-other-secret")

	// Swap the first signature character; it carries six significant bits.
	sig := strings.LastIndex(token, ".") + 1
	swap := byte('A')
	if token[sig] == 'A' {
		swap = 'B'
	}
	tampered := token[:sig] + string(swap) + token[sig+1:]

	foreign, _, err := other.Issue(&domain.User{Meta: domain.Meta{ID: "someone"}, Email: "e@x.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"empty bearer", "Bearer "},
		{"wrong scheme", "Basic " + token},
		{"no scheme", token},
		{"garbage", "Bearer not-a-jwt"},
		{"tampered signature", "Bearer " + tampered},
		{"foreign secret", "Bearer " + foreign},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler should not run")
			})
			handler.RequireAuth(svc.tokens, next).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			bodies = append(bodies, w.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("401 bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestRequireAuth_BearerSchemeCaseInsensitive(t *testing.T) {
	svc := newTestServices(t)
	token, _ := studentToken(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(svc.tokens, okHandler(t)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	svc := newTestServices(t)
	token, _ := studentToken(t, svc)

	gated := handler.RequireAuth(svc.tokens, handler.RequireRole(okHandler(t), domain.RoleCoach, domain.RoleAdmin))

	req := httptest.NewRequest(http.MethodPost, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	gated.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("student: expected 403, got %d", w.Code)
	}

	admin, err := svc.auth.Login(context.Background(), testAdminEmail, testAdminPassword)
	if err != nil {
		t.Fatalf("Login admin: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+admin.Token)
	w = httptest.NewRecorder()
	gated.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", w.Code)
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.RequireRole(next, domain.RoleAdmin).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := service.NewTokenBucket(0.001, 2)
	defer limiter.Close()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := handler.RateLimit(limiter, next)

	for i := range 2 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("other client: expected 204, got %d", w.Code)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := handler.RateLimit(nil, next)
	for range 50 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	}
}
