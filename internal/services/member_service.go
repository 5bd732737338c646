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

const (
	SearchLimit    = 10
	minSearchRunes = 2
	maxBioRunes    = 300
)

// MemberService serves member profiles, their posts and the member search
type MemberService struct {
	store  repositories.Store
	images storage.Backend
}

func NewMemberService(store repositories.Store, images storage.Backend) *MemberService {
	return &MemberService{store: store, images: images}
}

// GetByID returns the profile of id with activity stats as seen by caller
func (s *MemberService) GetByID(ctx context.Context, caller session.Caller, id uint) (*models.MemberProfile, error) {
	user, err := s.store.Users().GetUserByID(ctx, id)
	if err != nil {
		return nil, lookup("member.get", "member", err)
	}

	var stats models.MemberStats
	counters := []struct {
		dst *int64
		fn  func(context.Context, uint) (int64, error)
	}{
		{&stats.Posts, s.store.Posts().CountPostsByUser},
		{&stats.Comments, s.store.Comments().CountCommentsByUser},
		{&stats.Likes, s.store.Likes().CountLikesReceived},
		{&stats.Followers, s.store.Follows().GetFollowersCount},
		{&stats.Following, s.store.Follows().GetFollowingCount},
	}
	for _, c := range counters {
		if *c.dst, err = c.fn(ctx, id); err != nil {
			return nil, wrap("member.stats", err)
		}
	}

	profile := &models.MemberProfile{
		ID:           user.ID,
		Name:         user.Name,
		Avatar:       user.Image,
		Bio:          user.Bio,
		Location:     user.Location,
		JoinDate:     user.CreatedAt,
		Stats:        stats,
		IsOwnProfile: caller.UserID == user.ID,
	}
	// email is only shown to its owner
	if profile.IsOwnProfile {
		profile.Email = user.Email
	} else if profile.IsFollowing, err = s.store.Follows().IsFollowing(ctx, caller.UserID, user.ID); err != nil {
		return nil, wrap("member.get", err)
	}
	return profile, nil
}

// UpdateProfile changes the caller's own profile. Optional fields left nil are kept.
func (s *MemberService) UpdateProfile(ctx context.Context, caller session.Caller, req models.UpdateProfileRequest) (*models.User, error) {
	if req.ID != caller.UserID {
		return nil, apperr.Forbidden("cannot update another member's profile")
	}
	fields := map[string]string{}
	name := strings.TrimSpace(req.Name)
	if runeLen(name) < 2 {
		fields["name"] = "must be at least 2 characters"
	}
	if req.Bio != nil && runeLen(*req.Bio) > maxBioRunes {
		fields["bio"] = "must be at most 300 characters"
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields(fields)
	}

	user, err := s.store.Users().GetUserByID(ctx, req.ID)
	if err != nil {
		return nil, lookup("member.update", "member", err)
	}
	user.Name = name
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Image != nil {
		image, err := resolveImage(ctx, s.images, "avatars", *req.Image)
		if err != nil {
			return nil, err
		}
		user.Image = image
	}
	if err := s.store.Users().UpdateUser(ctx, user); err != nil {
		return nil, wrap("member.update", err)
	}
	return user, nil
}

// GetAllPostsByMember lists the posts authored by id, newest first
func (s *MemberService) GetAllPostsByMember(ctx context.Context, caller session.Caller, id uint) ([]models.PostView, error) {
	if _, err := s.store.Users().GetUserByID(ctx, id); err != nil {
		return nil, lookup("member.posts", "member", err)
	}
	posts, err := s.store.Posts().ListPosts(ctx, models.ListPostsOptions{AuthorID: &id})
	if err != nil {
		return nil, wrap("member.posts", err)
	}
	return buildPostViews(ctx, s.store, &caller, posts)
}

// SearchGlobal matches members by name or email, case-insensitively
func (s *MemberService) SearchGlobal(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if runeLen(query) < minSearchRunes {
		return nil, apperr.Validation("query", "must be at least 2 characters")
	}
	users, err := s.store.Users().SearchUsers(ctx, query, SearchLimit)
	if err != nil {
		return nil, wrap("member.search", err)
	}
	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToSummaryWithEmail())
	}
	return out, nil
}
