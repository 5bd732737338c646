package services

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")

	_, err := f.posts.Create(f.ctx, x, models.CreatePostRequest{Content: "   "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.posts.Create(f.ctx, x, models.CreatePostRequest{Content: strings.Repeat("a", 5001)})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.posts.Create(f.ctx, x, models.CreatePostRequest{Image: "ftp://example.com/a.png"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreatePostImages(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")

	p, err := f.posts.Create(f.ctx, x, models.CreatePostRequest{Image: "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", p.Image)
	assert.Equal(t, 0, f.images.Len())

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	p, err = f.posts.Create(f.ctx, x, models.CreatePostRequest{Content: "pic", Image: uri})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Image, "http://media.test/posts/"))
	assert.True(t, strings.HasSuffix(p.Image, ".png"))
	assert.Equal(t, 1, f.images.Len())
	assert.Equal(t, "Xavi", p.Author.Name)
}

func TestPostViewsAreViewerAware(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	y := f.user(t, "Yamal")

	older := f.post(t, x, "older")
	newer := f.post(t, x, "newer")
	_, err := f.likes.ToggleLike(f.ctx, y, older.ID)
	require.NoError(t, err)
	_, err = f.follows.ToggleFollow(f.ctx, y, x.UserID)
	require.NoError(t, err)
	f.comment(t, x, older.ID, nil, "bump")

	feed, err := f.posts.GetAll(f.ctx, &y, models.ListPostsOptions{})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
	assert.True(t, feed[1].IsLiked)
	assert.False(t, feed[0].IsLiked)
	assert.True(t, feed[0].IsFollowing)
	assert.EqualValues(t, 1, feed[1].Likes)
	assert.EqualValues(t, 1, feed[1].Comments)

	anon, err := f.posts.GetAll(f.ctx, nil, models.ListPostsOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.False(t, anon[0].IsLiked)
	assert.False(t, anon[0].IsFollowing)

	detail, err := f.posts.GetByID(f.ctx, y, older.ID)
	require.NoError(t, err)
	assert.Equal(t, feed[1], *detail)

	byMember, err := f.members.GetAllPostsByMember(f.ctx, y, x.UserID)
	require.NoError(t, err)
	assert.Equal(t, feed, byMember)

	_, err = f.posts.GetByID(f.ctx, y, 999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreatePostReloadsOnPrimary(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")

	// reads outside a transaction see a replica that has not caught up yet
	f.store.Fail(memory.OpReplicaReadPost, repositories.ErrNotFound)
	p, err := f.posts.Create(f.ctx, x, models.CreatePostRequest{Content: "Hoje tem jogo"})
	require.NoError(t, err)
	assert.Equal(t, "Hoje tem jogo", p.Content)
	assert.Equal(t, x.UserID, p.Author.ID)

	f.store.Fail(memory.OpReplicaReadPost, nil)
	posts, err := f.posts.GetAll(f.ctx, nil, models.ListPostsOptions{})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
