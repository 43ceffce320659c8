package models

import "time"

// Like is a (user, post) pair. Rows are hard-deleted on unlike so the
// unique index always means "currently liked".
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_like_user_post"`
	PostID    string    `json:"post_id" gorm:"size:36;not null;index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeStatus is the wire form of a toggle result.
type LikeStatus string

const (
	StatusLiked   LikeStatus = "liked"
	StatusUnliked LikeStatus = "unliked"
)

// ToggleResult reports the state after a like toggle.
type ToggleResult struct {
	Liked bool
}

// Status returns the wire form of r.
func (r ToggleResult) Status() LikeStatus {
	if r.Liked {
		return StatusLiked
	}
	return StatusUnliked
}
