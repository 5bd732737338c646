package services

import (
	"context"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/session"
)

// UnreadLimit caps GetUnread
const UnreadLimit = 20

// NotificationService reads and acknowledges the caller's notifications
type NotificationService struct {
	store repositories.Store
}

func NewNotificationService(store repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

// GetUnread returns the caller's newest unread notifications
func (s *NotificationService) GetUnread(ctx context.Context, caller session.Caller) ([]models.NotificationView, error) {
	list, err := s.store.Notifications().GetUnread(ctx, caller.UserID, UnreadLimit)
	if err != nil {
		return nil, wrap("notification.unread", err)
	}
	views := make([]models.NotificationView, 0, len(list))
	for _, n := range list {
		views = append(views, n.ToView())
	}
	return views, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, caller session.Caller) (*models.UnreadCount, error) {
	count, err := s.store.Notifications().GetUnreadCount(ctx, caller.UserID)
	if err != nil {
		return nil, wrap("notification.unread_count", err)
	}
	return &models.UnreadCount{Count: count}, nil
}

// MarkAllAsRead marks every unread notification of the caller as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, caller session.Caller) error {
	_, err := s.store.Notifications().MarkAllAsRead(ctx, caller.UserID)
	return wrap("notification.read_all", err)
}

// MarkAsRead marks one of the caller's notifications as read. Marking an
// already read notification succeeds without writing.
func (s *NotificationService) MarkAsRead(ctx context.Context, caller session.Caller, id string) error {
	n, err := s.store.Notifications().GetByID(ctx, id)
	if err != nil {
		return lookup("notification.read", "notification", err)
	}
	if n.RecipientID != caller.UserID {
		return apperr.Forbidden("notification belongs to another user")
	}
	if n.Read {
		return nil
	}
	if _, err := s.store.Notifications().MarkAsRead(ctx, id, caller.UserID); err != nil {
		return wrap("notification.read", err)
	}
	return nil
}
