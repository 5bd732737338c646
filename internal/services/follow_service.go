package services

import (
	"context"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/telemetry"
)

// FollowService toggles the caller -> target follow edge
type FollowService struct {
	store  repositories.Store
	events events.Publisher
}

func NewFollowService(store repositories.Store, pub events.Publisher) *FollowService {
	return &FollowService{store: store, events: pub}
}

// ToggleFollow follows targetID, or unfollows when the edge already exists.
// The target's FOLLOW_USER notification from the caller follows the edge.
func (s *FollowService) ToggleFollow(ctx context.Context, caller session.Caller, targetID uint) (*models.ToggleFollowResult, error) {
	if targetID == caller.UserID {
		return nil, apperr.Validation("userId", "cannot follow yourself")
	}

	var (
		box       outbox
		following bool
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetUserByID(ctx, targetID); err != nil {
			return lookup("follow.toggle", "user", err)
		}

		deleted, err := tx.Follows().DeleteFollow(ctx, caller.UserID, targetID)
		if err != nil {
			return err
		}
		if deleted {
			removed, err := tx.Notifications().DeleteByKey(ctx, models.NotificationKey{
				RecipientID: targetID,
				ActorID:     caller.UserID,
				Type:        models.NotificationFollowUser,
			})
			if err != nil {
				return err
			}
			box.removed(removed)
			return nil
		}

		following = true
		created, err := tx.Follows().CreateFollow(ctx, caller.UserID, targetID)
		if err != nil || !created {
			return err
		}
		return replaceNotification(ctx, tx, &box,
			newNotification(targetID, caller.UserID, models.NotificationFollowUser, nil, nil))
	})
	if err != nil {
		return nil, wrap("follow.toggle", err)
	}

	telemetry.Toggles.WithLabelValues("follow", telemetry.State(following)).Inc()
	box.flush(ctx, s.events)
	return &models.ToggleFollowResult{Following: following}, nil
}
