package domain

import (
	"context"
	"time"
)

// Role determines which gated operations a user may perform.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCoach   Role = "COACH"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleStudent:
		return true
	}
	return false
}

// User is an account as held by the store. It carries the password hash and
// must never leave the service layer; use Public for that.
type User struct {
	Meta
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// PublicUser is the outward shape of an account.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch lists the profile fields a user may change. Nil fields are left
// untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create stores a new user and fills in its Meta. It fails with
	// ErrDuplicateEmail if the email is taken; the check and the insert are
	// one atomic step.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Update applies patch to the user. It fails with ErrNotFound for an
	// unknown id and with ErrDuplicateEmail if the new email belongs to a
	// different user.
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
}
