package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/course-api/internal/domain"
)

// CoachInput is a validated coach provisioning request.
type CoachInput struct {
	Name     string
	Email    string
	Password string
}

// UserService handles profile reads and updates and coach provisioning.
type UserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// GetProfile returns the account of the authenticated caller.
func (s *UserService) GetProfile(ctx context.Context, actor domain.Claims) (domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

// UpdateProfile changes the caller's own name and/or email. The target is
// always the caller; there is no way to name another account.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Claims, patch domain.UserPatch) (domain.PublicUser, error) {
	user, err := s.users.Update(ctx, actor.UserID, patch)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return domain.PublicUser{}, domain.ErrEmailInUse
	}
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("update user: %w", err)
	}
	return user.Public(), nil
}

// CreateCoach provisions a COACH account. Only admins may do this.
func (s *UserService) CreateCoach(ctx context.Context, actor domain.Claims, in CoachInput) (domain.PublicUser, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.PublicUser{}, domain.ErrForbidden
	}

	coach, err := createAccount(ctx, s.users, s.hasher, in.Name, in.Email, in.Password, domain.RoleCoach)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return coach.Public(), nil
}
