package domain

import (
	"slices"
	"time"
)

// Claims is the identity asserted by a verified token. Email and Role are a
// snapshot taken when the token was issued and may lag behind the account.
type Claims struct {
	UserID    string
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claimed role is one of roles.
func (c Claims) HasRole(roles ...Role) bool {
	return slices.Contains(roles, c.Role)
}
