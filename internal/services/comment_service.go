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

const maxCommentRunes = 300

// CommentService creates comments and replies and reads comment threads
type CommentService struct {
	store  repositories.Store
	events events.Publisher
}

func NewCommentService(store repositories.Store, pub events.Publisher) *CommentService {
	return &CommentService{store: store, events: pub}
}

// AddComment stores a comment on a post, or a reply when ParentID is set.
// The post author and, for replies, the parent author are notified unless
// they are the caller; nobody is notified twice for one comment.
func (s *CommentService) AddComment(ctx context.Context, caller session.Caller, req models.CreateCommentRequest) (*models.CommentView, error) {
	if n := runeLen(req.Content); n < 1 || n > maxCommentRunes {
		return nil, apperr.Validation("content", "must be between 1 and 300 characters")
	}

	var (
		box     outbox
		comment *models.Comment
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, req.PostID)
		if err != nil {
			return lookup("comment.add", "post", err)
		}

		var parent *models.Comment
		if req.ParentID != nil {
			parent, err = tx.Comments().GetCommentByID(ctx, *req.ParentID)
			if err != nil {
				return lookup("comment.add", "parent comment", err)
			}
			if parent.PostID != post.ID {
				return apperr.NotFound("parent comment not found")
			}
			if parent.ParentID != nil {
				return apperr.Validation("parentId", "replies cannot be nested")
			}
		}

		comment = &models.Comment{
			PostID:   post.ID,
			UserID:   caller.UserID,
			ParentID: req.ParentID,
			Content:  req.Content,
		}
		if err := tx.Comments().CreateComment(ctx, comment); err != nil {
			return err
		}

		recipients := make([]uint, 0, 2)
		if post.UserID != caller.UserID {
			recipients = append(recipients, post.UserID)
		}
		if parent != nil && parent.UserID != caller.UserID && parent.UserID != post.UserID {
			recipients = append(recipients, parent.UserID)
		}
		for _, recipientID := range recipients {
			n := newNotification(recipientID, caller.UserID, models.NotificationCommentPost, &post.ID, &comment.ID)
			if err := tx.Notifications().CreateNotification(ctx, n); err != nil {
				return err
			}
			box.created(n)
		}
		return nil
	})
	if err != nil {
		return nil, wrap("comment.add", err)
	}

	level := "top"
	if comment.ParentID != nil {
		level = "reply"
	}
	telemetry.CommentsCreated.WithLabelValues(level).Inc()
	box.flush(ctx, s.events)

	author, err := s.store.Users().GetUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, wrap("comment.add", err)
	}
	comment.User = *author
	view := toCommentView(*comment, nil)
	return &view, nil
}

// GetCommentByPost returns the top-level comments of postID newest first,
// each carrying its direct replies oldest first
func (s *CommentService) GetCommentByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	if _, err := s.store.Posts().GetPostByID(ctx, postID); err != nil {
		return nil, lookup("comment.list", "post", err)
	}

	top, err := s.store.Comments().GetTopLevelByPostID(ctx, postID)
	if err != nil {
		return nil, wrap("comment.list", err)
	}
	topIDs := make([]uint, len(top))
	for i, c := range top {
		topIDs[i] = c.ID
	}
	replies, err := s.store.Comments().GetRepliesByParentIDs(ctx, topIDs)
	if err != nil {
		return nil, wrap("comment.list", err)
	}

	allIDs := append([]uint(nil), topIDs...)
	byParent := make(map[uint][]models.Comment)
	for _, r := range replies {
		allIDs = append(allIDs, r.ID)
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}
	likers, err := s.store.CommentLikes().GetLikerIDs(ctx, allIDs)
	if err != nil {
		return nil, wrap("comment.list", err)
	}

	views := make([]models.CommentView, 0, len(top))
	for _, c := range top {
		view := toCommentView(c, likers[c.ID])
		for _, r := range byParent[c.ID] {
			view.Replies = append(view.Replies, toCommentView(r, likers[r.ID]))
		}
		views = append(views, view)
	}
	return views, nil
}

// ToggleLike flips the caller's like on a comment. Comment likes do not notify.
func (s *CommentService) ToggleLike(ctx context.Context, caller session.Caller, commentID uint) (*models.ToggleLikeResult, error) {
	var liked bool
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Comments().GetCommentByID(ctx, commentID); err != nil {
			return lookup("comment.like", "comment", err)
		}
		deleted, err := tx.CommentLikes().DeleteCommentLike(ctx, commentID, caller.UserID)
		if err != nil || deleted {
			return err
		}
		liked = true
		_, err = tx.CommentLikes().CreateCommentLike(ctx, commentID, caller.UserID)
		return err
	})
	if err != nil {
		return nil, wrap("comment.like", err)
	}
	telemetry.Toggles.WithLabelValues("comment_like", telemetry.State(liked)).Inc()
	return &models.ToggleLikeResult{Liked: liked}, nil
}

func toCommentView(c models.Comment, likedBy []uint) models.CommentView {
	if likedBy == nil {
		likedBy = []uint{}
	}
	return models.CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    c.User.ToSummary(),
		LikedBy:   likedBy,
		Replies:   []models.CommentView{},
	}
}
