package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/jonathan/skillsculpt/internal/server/middleware"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *auth.JWTService
	logger      logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *auth.JWTService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, validationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, validationError(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// UpdatePassword handles password update requests for the authenticated user.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	userID, err := uuid.Parse(identity.Subject)
	if err != nil {
		// Google-verified subjects have no local password.
		h.fail(w, &ErrUserNotFound{})
		return
	}

	var req types.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, validationError(err))
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"}, h.logger)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.logger.WithError(err).Error("failed to generate token")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"}, h.logger)
		return
	}

	writeJSON(w, status, types.LoginResponse{User: user, Token: token}, h.logger)
}

// fail maps err to a status. Unexpected errors are logged and reported generically.
func (h *AuthHandler) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("auth request failed")
		message = "Internal Server Error"
	}
	writeJSON(w, status, map[string]string{"error": message}, h.logger)
}
