package models

import "time"

// Like is the unique pairing of a user and a post
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleLikeResult is returned by like toggles on posts and comments
type ToggleLikeResult struct {
	Liked bool `json:"liked"`
}

// LikesCount is returned by like.getLikesCount
type LikesCount struct {
	PostID uint  `json:"post_id"`
	Count  int64 `json:"count"`
}
