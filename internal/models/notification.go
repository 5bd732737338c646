package models

import "time"

// NotificationType tags what triggered a notification
type NotificationType string

const (
	NotificationLikePost    NotificationType = "LIKE_POST"
	NotificationCommentPost NotificationType = "COMMENT_POST"
	NotificationFollowUser  NotificationType = "FOLLOW_USER"
)

// Notification is delivered to RecipientID because ActorID did something.
// Read only ever goes from false to true.
type Notification struct {
	ID          string           `json:"id" gorm:"primaryKey;size:36"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index:idx_notification_recipient_read"`
	ActorID     uint             `json:"actor_id" gorm:"not null;index"`
	Actor       User             `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Type        NotificationType `json:"type" gorm:"size:20;not null"`
	PostID      *uint            `json:"post_id,omitempty" gorm:"index"`
	CommentID   *uint            `json:"comment_id,omitempty"`
	Read        bool             `json:"read" gorm:"default:false;not null;index:idx_notification_recipient_read"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// NotificationKey identifies the notification a toggle owns.
// PostID nil matches notifications without a post.
type NotificationKey struct {
	RecipientID uint
	ActorID     uint
	Type        NotificationType
	PostID      *uint
}

// NotificationView is a notification annotated with its actor's public summary
type NotificationView struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	PostID    *uint            `json:"postId,omitempty"`
	CommentID *uint            `json:"commentId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	Actor     UserSummary      `json:"actor"`
}

// ToView projects n with its preloaded actor
func (n Notification) ToView() NotificationView {
	return NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
		Actor:     n.Actor.ToSummary(),
	}
}

type UnreadCount struct {
	Count int64 `json:"count"`
}
