package services

import (
	"context"
	"strings"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/storage"
)

const maxPostRunes = 5000

// PostService creates posts and builds the PostView read model
type PostService struct {
	store  repositories.Store
	images storage.Backend
}

func NewPostService(store repositories.Store, images storage.Backend) *PostService {
	return &PostService{store: store, images: images}
}

// Create publishes a post with content, an image, or both
func (s *PostService) Create(ctx context.Context, caller session.Caller, req models.CreatePostRequest) (*models.PostView, error) {
	if strings.TrimSpace(req.Content) == "" && strings.TrimSpace(req.Image) == "" {
		return nil, apperr.ValidationFields(map[string]string{
			"content": "content or image is required",
			"image":   "content or image is required",
		})
	}
	if runeLen(req.Content) > maxPostRunes {
		return nil, apperr.Validation("content", "must be at most 5000 characters")
	}

	image, err := resolveImage(ctx, s.images, "posts", req.Image)
	if err != nil {
		return nil, err
	}

	// reload inside the transaction so the read goes to the primary, not a replica
	var views []models.PostView
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		post := &models.Post{UserID: caller.UserID, Content: req.Content, Image: image}
		if err := tx.Posts().CreatePost(ctx, post); err != nil {
			return err
		}
		created, err := tx.Posts().GetPostByID(ctx, post.ID)
		if err != nil {
			return err
		}
		views, err = buildPostViews(ctx, tx, &caller, []models.Post{*created})
		return err
	})
	if err != nil {
		return nil, wrap("post.create", err)
	}
	return &views[0], nil
}

// GetAll lists posts newest first. viewer is nil for anonymous requests.
func (s *PostService) GetAll(ctx context.Context, viewer *session.Caller, opts models.ListPostsOptions) ([]models.PostView, error) {
	opts.AuthorID = nil
	posts, err := s.store.Posts().ListPosts(ctx, opts)
	if err != nil {
		return nil, wrap("post.list", err)
	}
	return buildPostViews(ctx, s.store, viewer, posts)
}

func (s *PostService) GetByID(ctx context.Context, viewer session.Caller, postID uint) (*models.PostView, error) {
	post, err := s.store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookup("post.get", "post", err)
	}
	views, err := buildPostViews(ctx, s.store, &viewer, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// buildPostViews is the single place PostView is computed, whichever query loaded the posts
func buildPostViews(ctx context.Context, store repositories.Store, viewer *session.Caller, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs = append(authorIDs, p.UserID)
	}

	likes, err := store.Likes().GetLikesCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, wrap("post.views", err)
	}
	comments, err := store.Comments().GetCommentsCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, wrap("post.views", err)
	}

	liked := map[uint]bool{}
	following := map[uint]bool{}
	if viewer != nil {
		if liked, err = store.Likes().GetLikedPostIDs(ctx, viewer.UserID, postIDs); err != nil {
			return nil, wrap("post.views", err)
		}
		if following, err = store.Follows().GetFollowingAmong(ctx, viewer.UserID, authorIDs); err != nil {
			return nil, wrap("post.views", err)
		}
	}

	for _, p := range posts {
		views = append(views, models.PostView{
			ID:          p.ID,
			Content:     p.Content,
			Image:       p.Image,
			CreatedAt:   p.CreatedAt,
			Author:      p.User.ToSummary(),
			Likes:       likes[p.ID],
			Comments:    comments[p.ID],
			IsLiked:     liked[p.ID],
			IsFollowing: following[p.UserID],
		})
	}
	return views, nil
}
