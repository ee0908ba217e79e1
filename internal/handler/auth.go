package handler

import (
	"net/http"

	"github.com/msomdec/course-api/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /auth/register
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"success":true,"data":{"user":{...},"token":"..."}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "register user", err)
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	res, err := h.auth.Register(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	writeData(w, http.StatusCreated, "User registered successfully", res)
}

// HandleLogin processes a JSON login request.
// POST /auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"success":true,"data":{"user":{...},"token":"..."}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "login user", err)
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, "login user", err)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, "login user", err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", res)
}
