package services

import (
	"fmt"
	"testing"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAllAsReadOnlyTouchesCaller(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	y := f.user(t, "Yamal")
	z := f.user(t, "Zico")

	px := f.post(t, x, "x")
	py := f.post(t, y, "y")
	_, err := f.likes.ToggleLike(f.ctx, z, px.ID)
	require.NoError(t, err)
	_, err = f.likes.ToggleLike(f.ctx, z, py.ID)
	require.NoError(t, err)
	_, err = f.follows.ToggleFollow(f.ctx, z, x.UserID)
	require.NoError(t, err)

	require.Len(t, f.unread(t, x), 2)
	require.NoError(t, f.notifications.MarkAllAsRead(f.ctx, x))

	assert.Empty(t, f.unread(t, x))
	assert.Len(t, f.unread(t, y), 1)
}

func TestGetUnreadIsCappedAndNewestFirst(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	p := f.post(t, x, "popular")

	for i := 0; i < UnreadLimit+5; i++ {
		_, err := f.likes.ToggleLike(f.ctx, f.user(t, fmt.Sprintf("Fan%02d", i)), p.ID)
		require.NoError(t, err)
	}

	unread := f.unread(t, x)
	require.Len(t, unread, UnreadLimit)
	for i := 1; i < len(unread); i++ {
		assert.False(t, unread[i].CreatedAt.After(unread[i-1].CreatedAt))
	}
	assert.Equal(t, fmt.Sprintf("Fan%02d", UnreadLimit+4), unread[0].Actor.Name)

	count, err := f.notifications.GetUnreadCount(f.ctx, x)
	require.NoError(t, err)
	assert.EqualValues(t, UnreadLimit+5, count.Count)
}

func TestMarkAsReadOwnership(t *testing.T) {
	f := newFixture(t)
	x := f.user(t, "Xavi")
	y := f.user(t, "Yamal")
	p := f.post(t, x, "x")
	_, err := f.likes.ToggleLike(f.ctx, y, p.ID)
	require.NoError(t, err)

	unread := f.unread(t, x)
	require.Len(t, unread, 1)
	id := unread[0].ID

	err = f.notifications.MarkAsRead(f.ctx, y, id)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.Len(t, f.unread(t, x), 1)

	err = f.notifications.MarkAsRead(f.ctx, x, "does-not-exist")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, f.notifications.MarkAsRead(f.ctx, x, id))
	assert.Empty(t, f.unread(t, x))
	assert.NoError(t, f.notifications.MarkAsRead(f.ctx, x, id), "already read is a no-op")
}
