package handlers

import (
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and the feed
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, guards Guards) {
	g.POST("/posts", h.CreatePost, guards.Auth, guards.RateLimit)
	g.GET("/posts", h.GetPosts, guards.OptionalAuth)
	g.GET("/posts/:post_id", h.GetPost, guards.Auth)
}

// CreatePost creates a new post for the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.Request().Context(), caller, req)
	if err != nil {
		return err
	}
	return created(c, post)
}

// GetPosts returns the feed, newest first. Anonymous viewers get false viewer flags.
func (h *PostHandler) GetPosts(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}
	posts, err := h.posts.GetAll(c.Request().Context(), session.Optional(c), models.ListPostsOptions{Limit: limit, Offset: offset})
	if err != nil {
		return err
	}
	return ok(c, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}
	post, err := h.posts.GetByID(c.Request().Context(), caller, postID)
	if err != nil {
		return err
	}
	return ok(c, post)
}
