package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint) ([]models.Notification, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(ids []uint) error
	DeleteByTargets(targets []models.Target) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByRecipientID returns every notification of recipientID, newest first.
func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Notification{}).Where("id IN ? AND is_read = ?", ids, false).Update("is_read", true).Error
}

// DeleteByTargets removes every notification pointing at one of targets.
func (r *postgresNotificationRepository) DeleteByTargets(targets []models.Target) error {
	byType := make(map[models.TargetType][]string)
	for _, t := range targets {
		byType[t.Type()] = append(byType[t.Type()], t.Key())
	}
	for typ, keys := range byType {
		err := r.db.Where("target_type = ? AND target_id IN ?", typ, keys).Delete(&models.Notification{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
