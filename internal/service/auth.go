package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/msomdec/course-api/internal/domain"
)

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// AdminAccount describes the bootstrap administrator.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles registration, login and the bootstrap admin account.
type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens *TokenService

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a STUDENT account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	user, err := createAccount(ctx, s.users, s.hasher, in.Name, in.Email, in.Password, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login checks credentials and signs a fresh token. An unknown email and a
// wrong password fail identically with domain.ErrInvalidCredentials, and
// both cost one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(password, s.dummy())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// SeedAdmin creates the bootstrap ADMIN account unless an account with its
// email already exists. It reports whether an account was created and is
// safe to call any number of times against the same store.
func (s *AuthService) SeedAdmin(ctx context.Context, admin AdminAccount) (bool, error) {
	_, err := s.users.GetByEmail(ctx, admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("check admin %s: %w", admin.Email, err)
	}

	_, err = createAccount(ctx, s.users, s.hasher, admin.Name, admin.Email, admin.Password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		// Seeded concurrently by someone else.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin %s: %w", admin.Email, err)
	}
	return true, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// fallbackDummyDigest is a well-formed cost-10 bcrypt digest that no
// password matches. It stands in when hashing the dummy password fails.
const fallbackDummyDigest = "$2a$10$Zr0lS6kqG4mJ1Vf8yXcBdeQn5tHw2pLu9aK3sEoR7bYxCg1iMvTzD"

// dummy returns a digest that no password matches, used to keep the
// unknown-email path as slow as the wrong-password path.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			slog.Error("hash dummy password, using fallback digest", "error", err)
			digest = fallbackDummyDigest
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

// createAccount hashes password and stores a new user with role. The email
// uniqueness check is repeated atomically by the repository, so two racing
// callers cannot both succeed.
func createAccount(ctx context.Context, users domain.UserRepository, hasher PasswordHasher, name, email, password string, role domain.Role) (*domain.User, error) {
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
