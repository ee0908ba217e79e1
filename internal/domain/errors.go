package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by a service is one of these, possibly
// wrapped; anything else is an internal fault.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrDuplicateEmail     = fmt.Errorf("%w: email already registered", ErrInvalidInput)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)

	// ErrEmailInUse is a profile update colliding with another account.
	ErrEmailInUse = fmt.Errorf("%w: email already in use", ErrDuplicateEmail)

	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrCourseNotFound = fmt.Errorf("course %w", ErrNotFound)
)
