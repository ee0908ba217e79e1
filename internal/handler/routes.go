package handler

import (
	"net/http"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. A nil limiter
// leaves the credential endpoints unthrottled.
func RegisterRoutes(mux *http.ServeMux, tokens TokenVerifier, limiter *service.TokenBucket, auth *service.AuthService, users *service.UserService, courses *service.CourseService) {
	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(users)
	courseHandler := NewCourseHandler(courses)

	authenticated := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(tokens, h)
	}
	withRoles := func(h http.HandlerFunc, roles ...domain.Role) http.Handler {
		return RequireAuth(tokens, RequireRole(h, roles...))
	}

	mux.Handle("POST /auth/register", RateLimit(limiter, http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /auth/login", RateLimit(limiter, http.HandlerFunc(authHandler.HandleLogin)))

	mux.Handle("GET /users/me", authenticated(userHandler.HandleGetMe))
	mux.Handle("PUT /users/me", authenticated(userHandler.HandleUpdateMe))
	mux.Handle("POST /users/coach", withRoles(userHandler.HandleCreateCoach, domain.RoleAdmin))

	mux.HandleFunc("GET /courses", courseHandler.HandleList)
	mux.HandleFunc("GET /courses/{id}", courseHandler.HandleGet)
	mux.Handle("POST /courses", withRoles(courseHandler.HandleCreate, domain.RoleCoach, domain.RoleAdmin))
	mux.Handle("PUT /courses/{id}", withRoles(courseHandler.HandleUpdate, domain.RoleCoach, domain.RoleAdmin))
	mux.Handle("DELETE /courses/{id}", withRoles(courseHandler.HandleDelete, domain.RoleCoach, domain.RoleAdmin))

	mux.HandleFunc("GET /health", HandleHealth)
	mux.HandleFunc("/", HandleNotFound)
}
