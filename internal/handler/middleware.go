package handler

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/service"
)

// TokenVerifier resolves a bearer token into the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext extracts the verified identity from the request context.
// The second result is false for unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(domain.Claims)
	return claims, ok
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the bearer token from the Authorization header, verifies it and
// injects the claims into the request context. A missing token and a bad
// one get the same 401.
func RequireAuth(tokens TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeServiceError(w, "authenticate", domain.ErrUnauthenticated)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			writeServiceError(w, "authenticate", domain.ErrUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole lets the request through only if RequireAuth already attached
// claims whose role is one of roles.
func RequireRole(next http.Handler, roles ...domain.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeServiceError(w, "authorize", domain.ErrUnauthenticated)
			return
		}
		if !claims.HasRole(roles...) {
			writeServiceError(w, "authorize", domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests from a client address whose bucket is empty.
// A nil limiter disables limiting.
func RateLimit(limiter *service.TokenBucket, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets conservative browser security headers on every
// response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'self'; object-src 'none'")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
