package models

import "time"

// Comment is a comment on a post; ParentID references the comment it replies to
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content" gorm:"size:300;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateCommentRequest defines the request body for adding a comment
type CreateCommentRequest struct {
	PostID   uint   `json:"-" param:"post_id"`
	Content  string `json:"content" validate:"required"`
	ParentID *uint  `json:"parentId,omitempty"`
}

// CommentView is a comment with its author, likers and direct replies
type CommentView struct {
	ID        uint          `json:"id"`
	PostID    uint          `json:"postId"`
	ParentID  *uint         `json:"parentId,omitempty"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    UserSummary   `json:"user"`
	LikedBy   []uint        `json:"likes"`
	Replies   []CommentView `json:"replies"`
}
