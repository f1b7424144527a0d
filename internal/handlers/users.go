package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/giglegig/portfolio-api/internal/services"
	pkghttp "github.com/giglegig/portfolio-api/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*services.AuthResponse, error)
}

// UserServiceInterface defines the interface for account business logic
type UserServiceInterface interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateAccount(ctx context.Context, id, username, password string) (*models.User, error)
}

// UserHandler handles authentication and account HTTP requests
type UserHandler struct {
	authService AuthServiceInterface
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService AuthServiceInterface, userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// Request/Response DTOs

// RequestCodeRequest represents the request body for a login code
type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyCodeRequest represents the request body for code verification
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// LoginRequest represents the request body for password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest represents the request body for account updates
type UpdateAccountRequest struct {
	Username string `json:"username" validate:"omitempty,min=1,max=64"`
	Password string `json:"password" validate:"omitempty,min=8,max=128"`
}

// MessageResponse acknowledges an operation with no payload
type MessageResponse struct {
	Message string `json:"message"`
}

// RequestCodeResponse acknowledges that a login code was sent
type RequestCodeResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// RequestCode sends a one-time login code to the admin's email address
func (h *UserHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	// The admin allow-list is an exact string match; the submitted address
	// is passed through untouched.
	if err := h.authService.RequestCode(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RequestCodeResponse{
		Message: "Verification code sent",
		Email:   req.Email,
	})
}

// VerifyCode exchanges an emailed login code for a session token
func (h *UserHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.authService.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Login authenticates a user with email and password
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Register creates a new user account
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		// Weak-password and similar validation failures come back as plain
		// errors with a safe message
		if !errors.Is(err, models.ErrConflict) && !errors.Is(err, models.ErrInternalServer) {
			pkghttp.WriteBadRequest(w, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetAccount returns the authenticated user's own account
func (h *UserHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

// UpdateAccount updates the authenticated user's own account
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.userService.UpdateAccount(r.Context(), user.ID, req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrConflict) && !errors.Is(err, models.ErrInternalServer) {
			pkghttp.WriteBadRequest(w, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(updated))
}

// userToResponse converts a user model to its response DTO
func userToResponse(user *models.User) *services.UserResponse {
	return &services.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
