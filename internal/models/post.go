package models

import "time"

// Post is stored either in PostgreSQL or in the MongoDB "posts" collection,
// so it carries both gorm and bson tags. ID is a UUID in Postgres and an
// ObjectID hex string in Mongo.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index" bson:"author_id"`
	Title     string    `json:"title" gorm:"size:200;not null" bson:"title"`
	Content   string    `json:"content" gorm:"type:text" bson:"content"`
	CreatedAt time.Time `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PostFilter narrows a post listing. A nil AuthorIDs means "any author";
// an empty non-nil slice matches nothing.
type PostFilter struct {
	AuthorIDs       []uint
	Search          string
	SearchAuthorIDs []uint // authors whose username matched Search
	Offset          int
	Limit           int
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// EnrichedPost is a post with author info and viewer-specific flags
type EnrichedPost struct {
	Post
	Author        UserCompact `json:"author"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comment_count"`
	IsLiked       bool        `json:"is_liked"`
	IsSaved       bool        `json:"is_saved"`
}
