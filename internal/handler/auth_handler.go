package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"feedsvc/internal/auth"
	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// SessionResponse describes the identity carried by a token.
type SessionResponse struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} errors.Response{data=LoginResponse}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req, apperrors.ErrMissingCredentials); err != nil {
		return respondError(c, h.log, err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, apperrors.Response{
		Message: "Login successful",
		Data:    LoginResponse{Token: token, UserID: user.ID},
	})
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response{data=SessionResponse}
// @Failure 401 {object} errors.Response
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.Response{Message: "Unauthorized", Code: "UNAUTHORIZED"})
	}
	return c.JSON(http.StatusOK, apperrors.Response{
		Message: "Token valid",
		Data:    SessionResponse{Username: claims.Username, UserID: claims.UserID},
	})
}
