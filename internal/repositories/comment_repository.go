package repositories

import (
	"context"

	"github.com/clubhousefc/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Returned comments have their author preloaded.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetTopLevelByPostID returns comments without a parent, newest first
	GetTopLevelByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	// GetRepliesByParentIDs returns direct replies, oldest first
	GetRepliesByParentIDs(ctx context.Context, parentIDs []uint) ([]models.Comment, error)
	GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	CountCommentsByUser(ctx context.Context, userID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(comment).Error)
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetTopLevelByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, translate(err)
}

func (r *PostgresCommentRepository) GetRepliesByParentIDs(ctx context.Context, parentIDs []uint) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, translate(err)
}

func (r *PostgresCommentRepository) GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	if len(postIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id AS group_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rowsToMap(rows), nil
}

func (r *PostgresCommentRepository) CountCommentsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, translate(err)
}
