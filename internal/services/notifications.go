package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/metrics"
	"gorm.io/gorm"
)

// Verbs used by the built-in notification triggers.
const (
	VerbCommented    = "commented on your post"
	VerbLikedPost    = "liked your post"
	VerbLikedComment = "liked your comment"
	VerbFollowed     = "started following you"
)

// NotificationService records and lists notifications.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify records that actor did verb to target, for recipient. Acting on
// your own content notifies nobody.
func (s *NotificationService) Notify(ctx context.Context, recipientID, actorID uint, verb string, target models.Target) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return notify(tx, recipientID, actorID, verb, target)
	})
}

// notify is Notify inside an existing transaction.
func notify(tx *gorm.DB, recipientID, actorID uint, verb string, target models.Target) error {
	if recipientID == actorID {
		return nil
	}
	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
	}
	n.SetTarget(target)
	if err := repositories.NewPostgresNotificationRepository(tx).CreateNotification(n); err != nil {
		return err
	}
	metrics.NotificationsCreated.WithLabelValues(string(target.Type())).Inc()
	return nil
}

// List returns all notifications of userID, newest first, and marks the
// unread ones read. The result shows each notification as it was before
// the call.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.EnrichedNotification, error) {
	var result []models.EnrichedNotification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewPostgresNotificationRepository(tx)
		list, err := repo.GetByRecipientID(userID)
		if err != nil {
			return err
		}

		var unread []uint
		actorIDs := make([]uint, 0, len(list))
		for _, n := range list {
			if !n.IsRead {
				unread = append(unread, n.ID)
			}
			actorIDs = append(actorIDs, n.ActorID)
		}
		if err := repo.MarkAsRead(unread); err != nil {
			return err
		}

		actors, err := repositories.NewPostgresUserRepository(tx).GetUsersByIDs(actorIDs)
		if err != nil {
			return err
		}
		result = make([]models.EnrichedNotification, 0, len(list))
		for _, n := range list {
			actor := actors[n.ActorID]
			result = append(result, models.EnrichedNotification{
				Notification: n,
				Actor:        actor.ToCompact(),
				Target:       models.TargetRef{Type: n.TargetType, ID: n.TargetID},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnreadCount does not mark anything read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return repositories.NewPostgresNotificationRepository(s.db.WithContext(ctx)).GetUnreadCount(userID)
}
