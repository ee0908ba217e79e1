package handler

import (
	"net/http"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/service"
)

// UserHandler handles profile and coach provisioning requests.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleGetMe returns the authenticated user.
// GET /users/me
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, "get profile", domain.ErrUnauthenticated)
		return
	}

	user, err := h.users.GetProfile(r.Context(), claims)
	if err != nil {
		writeServiceError(w, "get profile", err)
		return
	}

	writeData(w, http.StatusOK, "", user)
}

// HandleUpdateMe changes the authenticated user's name and/or email.
// PUT /users/me
// Request: {"name":"...","email":"..."} (both optional)
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, "update profile", domain.ErrUnauthenticated)
		return
	}

	var req updateMeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "update profile", err)
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, "update profile", err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), claims, req.toPatch())
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}

	writeData(w, http.StatusOK, "Profile updated successfully", user)
}

// HandleCreateCoach provisions a coach account. Admin only.
// POST /users/coach
// Request: {"name":"...","email":"...","password":"..."}
func (h *UserHandler) HandleCreateCoach(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, "create coach", domain.ErrUnauthenticated)
		return
	}

	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "create coach", err)
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, "create coach", err)
		return
	}

	coach, err := h.users.CreateCoach(r.Context(), claims, req.toCoachInput())
	if err != nil {
		writeServiceError(w, "create coach", err)
		return
	}

	writeData(w, http.StatusCreated, "Coach created successfully", coach)
}
