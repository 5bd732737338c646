package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the repositories and provides the transaction boundary.
// Repositories obtained from the Store passed to fn share the transaction.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Likes() LikeRepository
	Follows() FollowRepository
	Comments() CommentRepository
	CommentLikes() CommentLikeRepository
	Notifications() NotificationRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// PostgresStore implements Store on top of gorm
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a Store. The gorm.DB should be opened with TranslateError.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Users() UserRepository { return NewPostgresUserRepository(s.db) }
func (s *PostgresStore) Posts() PostRepository { return NewPostgresPostRepository(s.db) }
func (s *PostgresStore) Likes() LikeRepository { return NewPostgresLikeRepository(s.db) }
func (s *PostgresStore) Follows() FollowRepository { return NewPostgresFollowRepository(s.db) }
func (s *PostgresStore) Comments() CommentRepository { return NewPostgresCommentRepository(s.db) }
func (s *PostgresStore) CommentLikes() CommentLikeRepository {
	return NewPostgresCommentLikeRepository(s.db)
}
func (s *PostgresStore) Notifications() NotificationRepository {
	return NewPostgresNotificationRepository(s.db)
}

// Transaction runs fn in a database transaction, rolling back when fn returns an error
func (s *PostgresStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresStore{db: tx})
	})
}

// translate maps gorm sentinel errors onto the repository ones
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// countRow receives "<col> AS group_id, COUNT(*) AS count" aggregates
type countRow struct {
	GroupID uint
	Count   int64
}

func rowsToMap(rows []countRow) map[uint]int64 {
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.GroupID] = r.Count
	}
	return out
}
