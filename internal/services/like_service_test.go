package services

import (
	"errors"
	"testing"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	y := f.user(t, "Yamal")
	p := f.post(t, x, "Hello")

	res, err := f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	unread := f.unread(t, x)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationLikePost, unread[0].Type)
	assert.Equal(t, y.UserID, unread[0].Actor.ID)
	assert.Equal(t, p.ID, *unread[0].PostID)

	res, err = f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)

	liked, err := f.store.Likes().HasUserLikedPost(f.ctx, y.UserID, p.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, f.unread(t, x))
}

func TestToggleLikeOwnPostDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	p := f.post(t, x, "mine")

	res, err := f.likes.ToggleLike(f.ctx, x, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Empty(t, f.unread(t, x))
	assert.Empty(t, f.events.Events())
}

func TestUnlikeRemovesReadNotificationAndRelikeRecreatesOne(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	y := f.user(t, "Yamal")
	p := f.post(t, x, "Hello")

	_, err := f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)
	require.NoError(t, f.notifications.MarkAllAsRead(f.ctx, x))

	_, err = f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)
	_, err = f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)

	unread := f.unread(t, x)
	require.Len(t, unread, 1)
	count, err := f.notifications.GetUnreadCount(f.ctx, x)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count.Count)

	var actions []events.Action
	for _, ev := range f.events.Events() {
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []events.Action{
		events.NotificationCreated,
		events.NotificationRemoved,
		events.NotificationCreated,
	}, actions)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	f := newFixture(t)
	y := f.user(t, "Yamal")

	_, err := f.likes.ToggleLike(f.ctx, y, 999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestToggleLikeRollsBackWhenNotificationFails(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	y := f.user(t, "Yamal")
	p := f.post(t, x, "Hello")

	f.store.Fail(memory.OpCreateNotification, errors.New("disk full"))
	_, err := f.likes.ToggleLike(f.ctx, y, p.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))

	liked, err := f.store.Likes().HasUserLikedPost(f.ctx, y.UserID, p.ID)
	require.NoError(t, err)
	assert.False(t, liked, "like must not survive a failed notification write")
	assert.Empty(t, f.events.Events())

	f.store.Fail(memory.OpCreateNotification, nil)
	res, err := f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Len(t, f.unread(t, x), 1)
}

func TestGetLikesCount(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	p := f.post(t, x, "Hello")
	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		_, err := f.likes.ToggleLike(f.ctx, f.user(t, name), p.ID)
		require.NoError(t, err)
	}

	count, err := f.likes.GetLikesCount(f.ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count.Count)

	_, err = f.likes.GetLikesCount(f.ctx, 404)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
