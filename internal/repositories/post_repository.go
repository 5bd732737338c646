package repositories

import (
	"context"

	"github.com/clubhousefc/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Returned posts have their author preloaded.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, opts models.ListPostsOptions) ([]models.Post, error)
	CountPostsByUser(ctx context.Context, userID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(post).Error)
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListPosts returns posts newest first
func (r *PostgresPostRepository) ListPosts(ctx context.Context, opts models.ListPostsOptions) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Order("id DESC")
	if opts.AuthorID != nil {
		q = q.Where("user_id = ?", *opts.AuthorID)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) CountPostsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, translate(err)
}
