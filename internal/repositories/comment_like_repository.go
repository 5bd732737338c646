package repositories

import (
	"context"

	"github.com/clubhousefc/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	CreateCommentLike(ctx context.Context, commentID, userID uint) (created bool, err error)
	DeleteCommentLike(ctx context.Context, commentID, userID uint) (deleted bool, err error)
	HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error)
	// GetLikerIDs maps each comment to the ids of the users who liked it
	GetLikerIDs(ctx context.Context, commentIDs []uint) (map[uint][]uint, error)
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

func (r *postgresCommentLikeRepository) CreateCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	like := &models.CommentLike{CommentID: commentID, UserID: userID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresCommentLikeRepository) DeleteCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresCommentLikeRepository) HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, translate(err)
}

func (r *postgresCommentLikeRepository) GetLikerIDs(ctx context.Context, commentIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint)
	if len(commentIDs) == 0 {
		return result, nil
	}
	var likes []models.CommentLike
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, l := range likes {
		result[l.CommentID] = append(result[l.CommentID], l.UserID)
	}
	return result, nil
}
