package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an identity record. It is the author of posts and comments and
// both ends of follow edges.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password       string    `json:"-"` // bcrypt hash
	Bio            string    `json:"bio" gorm:"size:500"`
	ProfilePicture string    `json:"profile_picture"`
	FirebaseUID    *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	FollowersCount int64     `json:"follower_count" gorm:"not null;default:0"`
	FollowingCount int64     `json:"following_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"date_joined"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the projection embedded in posts, comments and notifications.
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// ToCompact returns the compact projection of u.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// RegisterRequest defines the request body for local sign up
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// LoginRequest accepts either a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateUserRequest struct {
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
