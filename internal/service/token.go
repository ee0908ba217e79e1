package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/course-api/internal/domain"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// tokenClaims carries the validity window twice. The registered iat and exp
// claims are whole seconds; iat_ns and exp_ns hold the exact instants in Unix
// nanoseconds and are what Verify enforces.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	IssuedAtNano  int64       `json:"iat_ns"`
	ExpiresAtNano int64       `json:"exp_ns"`
}

// TokenService issues and verifies HS256-signed identity tokens. Tokens are
// self-contained: verification never consults the user store, and the only
// way to revoke them is to rotate the secret or wait for expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTokenTTL overrides DefaultTokenTTL.
func WithTokenTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) { s.ttl = ttl }
}

// WithTokenClock replaces time.Now for issuing and verifying.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for user and returns it with the claims it carries.
func (s *TokenService) Issue(user *domain.User) (string, domain.Claims, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
			// Rounded up so the library's own expiry check never fires
			// before the exact one.
			ExpiresAt: jwt.NewNumericDate(ceilSecond(exp)),
		},
		Email:         user.Email,
		Role:          user.Role,
		IssuedAtNano:  now.UnixNano(),
		ExpiresAtNano: exp.UnixNano(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return token, toDomainClaims(claims), nil
}

// Verify checks the signature and expiry of tokenString and returns its
// claims. Every failure is reported as domain.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (domain.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	if claims.Subject == "" || !claims.Role.Valid() || claims.IssuedAtNano == 0 || claims.ExpiresAtNano == 0 {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	// The token is dead from the exact instant of expiry onwards.
	out := toDomainClaims(*claims)
	if !s.now().Before(out.ExpiresAt) {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return out, nil
}

func toDomainClaims(c tokenClaims) domain.Claims {
	return domain.Claims{
		UserID:    c.Subject,
		Email:     c.Email,
		Role:      c.Role,
		IssuedAt:  time.Unix(0, c.IssuedAtNano).UTC(),
		ExpiresAt: time.Unix(0, c.ExpiresAtNano).UTC(),
	}
}

func ceilSecond(t time.Time) time.Time {
	whole := t.Truncate(time.Second)
	if whole.Before(t) {
		return whole.Add(time.Second)
	}
	return whole
}
