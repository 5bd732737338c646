package handlers

import (
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, guards Guards) {
	g.POST("/posts/:post_id/like", h.ToggleLike, guards.Auth, guards.RateLimit)
	g.GET("/posts/:post_id/likes/count", h.GetLikesCountForPost, guards.Auth)
}

// ToggleLike likes or unlikes a post depending on the current state
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}
	res, err := h.likes.ToggleLike(c.Request().Context(), caller, postID)
	if err != nil {
		return err
	}
	return ok(c, res)
}

// GetLikesCountForPost retrieves the total number of likes for a specific post
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}
	res, err := h.likes.GetLikesCount(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return ok(c, res)
}
