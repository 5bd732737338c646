package handlers

import (
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// MemberHandler handles member profile HTTP requests
type MemberHandler struct {
	members *services.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(members *services.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// RegisterMemberRoutes registers member profile routes
func (h *MemberHandler) RegisterMemberRoutes(g *echo.Group, guards Guards) {
	g.GET("/members/search", h.SearchMembers)
	g.GET("/members/:id", h.GetMember, guards.Auth)
	g.PUT("/members/:id", h.UpdateProfile, guards.Auth, guards.RateLimit)
	g.GET("/members/:id/posts", h.GetMemberPosts, guards.Auth)
}

// GetMember returns a member profile with stats
func (h *MemberHandler) GetMember(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.members.GetByID(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, profile)
}

// UpdateProfile updates the caller's own profile
func (h *MemberHandler) UpdateProfile(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return paramErr("id")
	}
	user, err := h.members.UpdateProfile(c.Request().Context(), caller, req)
	if err != nil {
		return err
	}
	return ok(c, user)
}

// GetMemberPosts lists a member's posts, newest first
func (h *MemberHandler) GetMemberPosts(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	posts, err := h.members.GetAllPostsByMember(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, posts)
}

// SearchMembers searches members by name or email
func (h *MemberHandler) SearchMembers(c echo.Context) error {
	users, err := h.members.SearchGlobal(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return ok(c, users)
}
