package services

import (
	"context"
	"strings"
	"testing"

	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories/memory"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/storage"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx           context.Context
	store         *memory.Store
	events        *events.Recorder
	images        *storage.Memory
	likes         *LikeService
	follows       *FollowService
	comments      *CommentService
	notifications *NotificationService
	posts         *PostService
	members       *MemberService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := &events.Recorder{}
	images := storage.NewMemory("http://media.test")
	return &fixture{
		ctx:           context.Background(),
		store:         store,
		events:        rec,
		images:        images,
		likes:         NewLikeService(store, rec),
		follows:       NewFollowService(store, rec),
		comments:      NewCommentService(store, rec),
		notifications: NewNotificationService(store),
		posts:         NewPostService(store, images),
		members:       NewMemberService(store, images),
	}
}

func (f *fixture) user(t *testing.T, name string) session.Caller {
	t.Helper()
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@clubhouse.fc"}
	require.NoError(t, f.store.Users().CreateUser(f.ctx, u))
	return session.Caller{UserID: u.ID, Email: u.Email}
}

func (f *fixture) post(t *testing.T, author session.Caller, content string) *models.PostView {
	t.Helper()
	p, err := f.posts.Create(f.ctx, author, models.CreatePostRequest{Content: content})
	require.NoError(t, err)
	return p
}

func (f *fixture) comment(t *testing.T, caller session.Caller, postID uint, parentID *uint, content string) *models.CommentView {
	t.Helper()
	c, err := f.comments.AddComment(f.ctx, caller, models.CreateCommentRequest{PostID: postID, ParentID: parentID, Content: content})
	require.NoError(t, err)
	return c
}

func (f *fixture) unread(t *testing.T, caller session.Caller) []models.NotificationView {
	t.Helper()
	list, err := f.notifications.GetUnread(f.ctx, caller)
	require.NoError(t, err)
	return list
}

func uintPtr(v uint) *uint { return &v }
