package models

import (
	"fmt"
	"strconv"
	"time"
)

// TargetType is the storage tag of a notification target.
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
	TargetUser    TargetType = "user"
)

// Target is the entity a notification points at. The set of variants is
// closed: PostTarget, CommentTarget and UserTarget.
type Target interface {
	Type() TargetType
	Key() string
	sealed()
}

// PostTarget references a post.
type PostTarget struct{ PostID string }

// CommentTarget references a comment.
type CommentTarget struct{ CommentID uint }

// UserTarget references a user, used for follow notifications.
type UserTarget struct{ UserID uint }

func (t PostTarget) Type() TargetType    { return TargetPost }
func (t PostTarget) Key() string         { return t.PostID }
func (PostTarget) sealed()               {}
func (t CommentTarget) Type() TargetType { return TargetComment }
func (t CommentTarget) Key() string      { return strconv.FormatUint(uint64(t.CommentID), 10) }
func (CommentTarget) sealed()            {}
func (t UserTarget) Type() TargetType    { return TargetUser }
func (t UserTarget) Key() string         { return strconv.FormatUint(uint64(t.UserID), 10) }
func (UserTarget) sealed()               {}

// ParseTarget rebuilds a Target from its stored (type, id) pair.
func ParseTarget(typ TargetType, id string) (Target, error) {
	switch typ {
	case TargetPost:
		if id == "" {
			return nil, fmt.Errorf("empty post target id")
		}
		return PostTarget{PostID: id}, nil
	case TargetComment:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid comment target id %q: %w", id, err)
		}
		return CommentTarget{CommentID: uint(n)}, nil
	case TargetUser:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user target id %q: %w", id, err)
		}
		return UserTarget{UserID: uint(n)}, nil
	}
	return nil, fmt.Errorf("unknown target type %q", typ)
}

// Notification is the stored row. TargetType/TargetID never leave the
// repository layer untyped; use Target() above it.
type Notification struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	RecipientID uint       `json:"recipient_id" gorm:"not null;index"`
	ActorID     uint       `json:"actor_id" gorm:"not null;index"`
	Verb        string     `json:"verb" gorm:"size:255;not null"`
	TargetType  TargetType `json:"-" gorm:"size:20;not null;index:idx_notification_target"`
	TargetID    string     `json:"-" gorm:"size:36;not null;index:idx_notification_target"`
	IsRead      bool       `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt   time.Time  `json:"timestamp" gorm:"index"`
}

// SetTarget stores t on the row.
func (n *Notification) SetTarget(t Target) {
	n.TargetType = t.Type()
	n.TargetID = t.Key()
}

// Target decodes the stored target reference.
func (n *Notification) Target() (Target, error) {
	return ParseTarget(n.TargetType, n.TargetID)
}

// TargetRef is the wire form of a target.
type TargetRef struct {
	Type TargetType `json:"type"`
	ID   string     `json:"id"`
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	Notification
	Actor  UserCompact `json:"actor"`
	Target TargetRef   `json:"target"`
}
