package service_test

import (
	"context"
	"testing"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/repository/memory"
	"github.com/msomdec/course-api/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type testEnv struct {
	db      *memory.DB
	tokens  *service.TokenService
	auth    *service.AuthService
	users   *service.UserService
	courses *service.CourseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := memory.New()
	// Use cost 4 for fast tests.
	hasher := service.NewBcryptHasher(4)
	tokens := service.NewTokenService(testJWTSecret)
	return &testEnv{
		db:      db,
		tokens:  tokens,
		auth:    service.NewAuthService(db.Users(), hasher, tokens),
		users:   service.NewUserService(db.Users(), hasher),
		courses: service.NewCourseService(db.Courses()),
	}
}

// register creates a student and returns the claims of its token.
func (e *testEnv) register(t *testing.T, name, email string) domain.Claims {
	t.Helper()
	res, err := e.auth.Register(context.Background(), service.RegisterInput{Name: name, Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return e.verify(t, res.Token)
}

// coach provisions a coach through an admin and returns its token claims.
func (e *testEnv) coach(t *testing.T, name, email string) domain.Claims {
	t.Helper()
	ctx := context.Background()
	if _, err := e.users.CreateCoach(ctx, e.admin(t), service.CoachInput{Name: name, Email: email, Password: "secret1"}); err != nil {
		t.Fatalf("CreateCoach %s: %v", email, err)
	}
	res, err := e.auth.Login(ctx, email, "secret1")
	if err != nil {
		t.Fatalf("Login %s: %v", email, err)
	}
	return e.verify(t, res.Token)
}

// admin seeds the bootstrap admin if needed and returns its token claims.
func (e *testEnv) admin(t *testing.T) domain.Claims {
	t.Helper()
	ctx := context.Background()
	if _, err := e.auth.SeedAdmin(ctx, service.AdminAccount{Name: "Admin User", Email: "admin@no.com", Password: "admin123"}); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	res, err := e.auth.Login(ctx, "admin@no.com", "admin123")
	if err != nil {
		t.Fatalf("Login admin: %v", err)
	}
	return e.verify(t, res.Token)
}

func (e *testEnv) verify(t *testing.T, token string) domain.Claims {
	t.Helper()
	claims, err := e.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return claims
}

func strPtr(s string) *string { return &s }
