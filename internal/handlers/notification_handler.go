package handlers

import (
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, guards Guards) {
	g.GET("/notifications/unread", h.GetUnread, guards.Auth)
	g.GET("/notifications/unread-count", h.GetUnreadCount, guards.Auth)
	g.PUT("/notifications/read-all", h.MarkAllAsRead, guards.Auth)
	g.PUT("/notifications/:id/read", h.MarkAsRead, guards.Auth)
}

// GetUnread returns the caller's latest unread notifications
func (h *NotificationHandler) GetUnread(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	list, err := h.notifications.GetUnread(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return ok(c, list)
}

// GetUnreadCount returns the count of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	count, err := h.notifications.GetUnreadCount(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return ok(c, count)
}

// MarkAllAsRead marks all the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllAsRead(c.Request().Context(), caller); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "all notifications marked as read"})
}

// MarkAsRead marks a single notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	caller, err := session.Require(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAsRead(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "notification marked as read"})
}
