package handlers

import (
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	follows *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, guards Guards) {
	g.POST("/users/:user_id/follow", h.ToggleFollow, guards.Auth, guards.RateLimit)
}

// ToggleFollow follows or unfollows a user
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	targetID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	res, err := h.follows.ToggleFollow(c.Request().Context(), caller, targetID)
	if err != nil {
		return err
	}
	return ok(c, res)
}
