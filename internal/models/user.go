package models

import "time"

// User is a registered ClubHouse FC member
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password    string    `json:"-"`                                         // bcrypt hash, empty for Firebase-only accounts
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"`             // nil unless linked to a Firebase account
	Image       string    `json:"image"`
	Bio         string    `json:"bio" gorm:"size:300"`
	Location    string    `json:"location" gorm:"size:120"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserSummary is the public projection of a user embedded in other read models
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Email string `json:"email,omitempty"`
}

// ToSummary builds the public projection without the email address
func (u User) ToSummary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Image: u.Image}
}

// ToSummaryWithEmail builds the public projection including the email address
func (u User) ToSummaryWithEmail() UserSummary {
	s := u.ToSummary()
	s.Email = u.Email
	return s
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest exchanges a Firebase ID token for a local session token
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateProfileRequest struct {
	ID       uint    `json:"-" param:"id"`
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=120"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=300"`
	Image    *string `json:"image,omitempty"`
}

// MemberStats aggregates a member's activity
type MemberStats struct {
	Posts     int64 `json:"posts"`
	Comments  int64 `json:"comments"`
	Likes     int64 `json:"likes"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// MemberProfile is the profile page read model
type MemberProfile struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Avatar       string      `json:"avatar"`
	Email        string      `json:"email,omitempty"`
	Bio          string      `json:"bio"`
	Location     string      `json:"location"`
	JoinDate     time.Time   `json:"joinDate"`
	Stats        MemberStats `json:"stats"`
	IsOwnProfile bool        `json:"isOwnProfile"`
	IsFollowing  bool        `json:"isFollowing"`
}

// AuthResult is returned by sign-up, sign-in and firebase-login
type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}
