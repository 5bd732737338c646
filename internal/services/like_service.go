package services

import (
	"context"

	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/telemetry"
)

// LikeService toggles likes on posts and keeps the owner's LIKE_POST notification in step
type LikeService struct {
	store  repositories.Store
	events events.Publisher
}

func NewLikeService(store repositories.Store, pub events.Publisher) *LikeService {
	return &LikeService{store: store, events: pub}
}

// ToggleLike likes postID when the caller has not liked it yet and unlikes it otherwise.
// Liking someone else's post replaces their LIKE_POST notification from the caller;
// unliking removes it, read or not.
func (s *LikeService) ToggleLike(ctx context.Context, caller session.Caller, postID uint) (*models.ToggleLikeResult, error) {
	var (
		box   outbox
		liked bool
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return lookup("like.toggle", "post", err)
		}

		key := models.NotificationKey{
			RecipientID: post.UserID,
			ActorID:     caller.UserID,
			Type:        models.NotificationLikePost,
			PostID:      &post.ID,
		}

		deleted, err := tx.Likes().DeleteLike(ctx, caller.UserID, post.ID)
		if err != nil {
			return err
		}
		if deleted {
			removed, err := tx.Notifications().DeleteByKey(ctx, key)
			if err != nil {
				return err
			}
			box.removed(removed)
			return nil
		}

		liked = true
		created, err := tx.Likes().CreateLike(ctx, caller.UserID, post.ID)
		if err != nil || !created {
			// not created: a concurrent request already liked it
			return err
		}
		if post.UserID == caller.UserID {
			return nil
		}
		return replaceNotification(ctx, tx, &box,
			newNotification(post.UserID, caller.UserID, models.NotificationLikePost, &post.ID, nil))
	})
	if err != nil {
		return nil, wrap("like.toggle", err)
	}

	telemetry.Toggles.WithLabelValues("like", telemetry.State(liked)).Inc()
	box.flush(ctx, s.events)
	return &models.ToggleLikeResult{Liked: liked}, nil
}

// GetLikesCount returns the number of likes on postID
func (s *LikeService) GetLikesCount(ctx context.Context, postID uint) (*models.LikesCount, error) {
	if _, err := s.store.Posts().GetPostByID(ctx, postID); err != nil {
		return nil, lookup("like.count", "post", err)
	}
	count, err := s.store.Likes().GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return nil, wrap("like.count", err)
	}
	return &models.LikesCount{PostID: postID, Count: count}, nil
}
