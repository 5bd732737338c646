package handlers

import (
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, guards Guards) {
	g.POST("/posts/:post_id/comments", h.AddComment, guards.Auth, guards.RateLimit)
	g.GET("/posts/:post_id/comments", h.GetComments, guards.Auth)
	g.POST("/comments/:comment_id/like", h.ToggleCommentLike, guards.Auth, guards.RateLimit)
}

// AddComment adds a comment, or a reply when parentId is set
func (h *CommentHandler) AddComment(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.PostID == 0 {
		return paramErr("post_id")
	}
	comment, err := h.comments.AddComment(c.Request().Context(), caller, req)
	if err != nil {
		return err
	}
	return created(c, comment)
}

// GetComments returns the comment threads of a post
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}
	comments, err := h.comments.GetCommentByPost(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return ok(c, comments)
}

// ToggleCommentLike likes or unlikes a comment
func (h *CommentHandler) ToggleCommentLike(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "comment_id")
	if err != nil {
		return err
	}
	res, err := h.comments.ToggleLike(c.Request().Context(), caller, commentID)
	if err != nil {
		return err
	}
	return ok(c, res)
}
