package models

import "time"

// Post is a feed entry authored by a user. Like and comment counts are derived.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:text"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a new post.
// At least one of content or image must be present.
type CreatePostRequest struct {
	Content string `json:"content" validate:"max=5000"`
	Image   string `json:"image,omitempty"`
}

// PostView is the single read shape of a post, whichever query produced it
type PostView struct {
	ID          uint        `json:"id"`
	Content     string      `json:"content"`
	Image       string      `json:"image,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Author      UserSummary `json:"user"`
	Likes       int64       `json:"likes"`
	Comments    int64       `json:"comments"`
	IsLiked     bool        `json:"isLiked"`
	IsFollowing bool        `json:"isFollowing"`
}

// ListPostsOptions filters and pages post listings. Zero values mean no filter/limit.
type ListPostsOptions struct {
	AuthorID *uint
	Limit    int
	Offset   int
}
