package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	// Setup mock database
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	// Configure GORM with mock
	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestCreateLike(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		created bool
	}{
		{"new like", sqlmock.NewRows([]string{"id"}).AddRow(1), true},
		{"already liked", sqlmock.NewRows([]string{"id"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectQuery(`INSERT INTO "likes" .* ON CONFLICT DO NOTHING RETURNING "id"`).WillReturnRows(tt.rows)
			mock.ExpectCommit()

			created, err := NewPostgresLikeRepository(db).CreateLike(context.Background(), 2, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.created, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteFollow_ReportsWhetherARowWasRemoved(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = .* AND following_id = .*`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := NewPostgresFollowRepository(db).DeleteFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasUserLikedPost(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = .* AND post_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := NewPostgresLikeRepository(db).HasUserLikedPost(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestGetLikesCountByPostIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT post_id AS group_id, COUNT\(\*\) AS count FROM "likes" WHERE post_id IN .* GROUP BY "post_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "count"}).AddRow(10, 3).AddRow(11, 1))

	counts, err := NewPostgresLikeRepository(db).GetLikesCountByPostIDs(context.Background(), []uint{10, 11, 12})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{10: 3, 11: 1}, counts)

	empty, err := NewPostgresLikeRepository(db).GetLikesCountByPostIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	_, err := NewPostgresUserRepository(db).GetUserByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByEmail_IsCaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = LOWER\(.*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow(1, "João Silva", "joao@clubhousefc.com", now, now))

	u, err := NewPostgresUserRepository(db).GetUserByEmail(context.Background(), "JOAO@clubhousefc.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, "João Silva", u.Name)
}

func TestMarkAllAsRead(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read"=.* WHERE recipient_id = .* AND read = .*`).
		WithArgs(true, 5, false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := NewPostgresNotificationRepository(db).MarkAllAsRead(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByKey_ScopesPostlessNotifications(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM "notifications" WHERE .*post_id IS NULL RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipient_id", "actor_id", "type", "read"}).
			AddRow("n-1", 2, 1, "FOLLOW_USER", false))
	mock.ExpectCommit()

	deleted, err := NewPostgresNotificationRepository(db).DeleteByKey(context.Background(), models.NotificationKey{
		RecipientID: 2, ActorID: 1, Type: models.NotificationFollowUser,
	})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "n-1", deleted[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewPostgresStore(db).Transaction(context.Background(), func(tx Store) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)
	other := errors.New("other")
	assert.Equal(t, other, translate(other))
}
