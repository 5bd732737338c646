package handlers

import (
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, guards Guards) {
	g.POST("/auth/sign-up", h.SignUp, guards.RateLimit)
	g.POST("/auth/sign-in", h.SignIn, guards.RateLimit)
	g.POST("/auth/firebase-login", h.FirebaseLogin, guards.RateLimit)
}

// SignUp handles local user registration with email and password
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.auth.SignUp(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return created(c, res)
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.auth.SignIn(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return ok(c, res)
}

// FirebaseLogin exchanges a Firebase ID token for a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.auth.FirebaseLogin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return ok(c, res)
}
