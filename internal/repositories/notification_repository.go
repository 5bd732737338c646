package repositories

import (
	"context"

	"github.com/clubhousefc/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	// DeleteByKey removes every notification matching key, read or unread
	DeleteByKey(ctx context.Context, key models.NotificationKey) ([]models.Notification, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// GetUnread returns unread notifications with their actor, newest first
	GetUnread(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	// MarkAsRead flips one notification owned by recipientID; affected is 0 when none matched
	MarkAsRead(ctx context.Context, id string, recipientID uint) (affected int64, err error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return translate(r.db.WithContext(ctx).Omit("Actor").Create(notification).Error)
}

func (r *postgresNotificationRepository) keyScope(db *gorm.DB, key models.NotificationKey) *gorm.DB {
	db = db.Where("recipient_id = ? AND actor_id = ? AND type = ?", key.RecipientID, key.ActorID, key.Type)
	if key.PostID != nil {
		return db.Where("post_id = ?", *key.PostID)
	}
	return db.Where("post_id IS NULL")
}

func (r *postgresNotificationRepository) DeleteByKey(ctx context.Context, key models.NotificationKey) ([]models.Notification, error) {
	var deleted []models.Notification
	db := r.keyScope(r.db.WithContext(ctx), key)
	if err := db.Clauses(clause.Returning{}).Delete(&deleted).Error; err != nil {
		return nil, translate(err)
	}
	return deleted, nil
}

func (r *postgresNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).Preload("Actor").Where("id = ?", id).First(&n).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *postgresNotificationRepository) GetUnread(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).Preload("Actor").
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, translate(err)
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ? AND read = ?", recipientID, false).Count(&count).Error
	return count, translate(err)
}

func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, id string, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	return res.RowsAffected, translate(res.Error)
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	return res.RowsAffected, translate(res.Error)
}
