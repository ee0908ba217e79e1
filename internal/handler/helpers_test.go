package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msomdec/course-api/internal/handler"
	"github.com/msomdec/course-api/internal/repository/memory"
	"github.com/msomdec/course-api/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

const (
	testAdminEmail    = "admin@no.com"
	testAdminPassword = "admin123"
)

type testServices struct {
	tokens  *service.TokenService
	auth    *service.AuthService
	users   *service.UserService
	courses *service.CourseService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := memory.New()
	// Use cost 4 for fast tests.
	hasher := service.NewBcryptHasher(4)
	tokens := service.NewTokenService(testJWTSecret)
	auth := service.NewAuthService(db.Users(), hasher, tokens)
	if _, err := auth.SeedAdmin(context.Background(), service.AdminAccount{
		Name:     "Admin User",
		Email:    testAdminEmail,
		Password: testAdminPassword,
	}); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	return &testServices{
		tokens:  tokens,
		auth:    auth,
		users:   service.NewUserService(db.Users(), hasher),
		courses: service.NewCourseService(db.Courses()),
	}
}

// newTestServer starts the full route table without rate limiting.
func newTestServer(t *testing.T) (*httptest.Server, *testServices) {
	t.Helper()
	svc := newTestServices(t)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc.tokens, nil, svc.auth, svc.users, svc.courses)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv, svc
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type userBody struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash"`
}

type authBody struct {
	User  userBody `json:"user"`
	Token string   `json:"token"`
}

type courseBody struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedBy   string `json:"createdBy"`
}

// do sends a JSON request and decodes the envelope. A nil body sends none.
func do(t *testing.T, method, url, token string, body any) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode body: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func decodeData(t *testing.T, res apiResponse, dst any) {
	t.Helper()
	if err := json.Unmarshal(res.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", res.Data, err)
	}
}

func expectStatus(t *testing.T, step string, got, want int, res apiResponse) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: expected %d, got %d (%s)", step, want, got, res.Message)
	}
}
