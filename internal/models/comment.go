package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:36;not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentRequest is the body for creating or editing a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// EnrichedComment includes author info and like count
type EnrichedComment struct {
	Comment
	Author     UserCompact `json:"author"`
	LikesCount int64       `json:"likes_count"`
}
