package services

import (
	"testing"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowAlternates(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "Ana")
	b := f.user(t, "Bruno")

	for i := 0; i < 4; i++ {
		res, err := f.follows.ToggleFollow(f.ctx, a, b.UserID)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, res.Following, "call %d", i)

		count, err := f.store.Follows().GetFollowersCount(f.ctx, b.UserID)
		require.NoError(t, err)
		assert.LessOrEqual(t, count, int64(1))
	}

	following, err := f.store.Follows().IsFollowing(f.ctx, a.UserID, b.UserID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Empty(t, f.unread(t, b))
}

func TestToggleFollowNotifiesTarget(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "Ana")
	b := f.user(t, "Bruno")

	_, err := f.follows.ToggleFollow(f.ctx, a, b.UserID)
	require.NoError(t, err)

	unread := f.unread(t, b)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationFollowUser, unread[0].Type)
	assert.Equal(t, a.UserID, unread[0].Actor.ID)
	assert.Nil(t, unread[0].PostID)
	assert.Empty(t, f.unread(t, a))
}

func TestToggleFollowRefollowKeepsSingleNotification(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "Ana")
	b := f.user(t, "Bruno")

	for i := 0; i < 3; i++ {
		_, err := f.follows.ToggleFollow(f.ctx, a, b.UserID)
		require.NoError(t, err)
	}
	assert.Len(t, f.unread(t, b), 1)
}

func TestToggleFollowRejectsSelfAndUnknown(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "Ana")

	_, err := f.follows.ToggleFollow(f.ctx, a, a.UserID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.follows.ToggleFollow(f.ctx, a, 12345)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
