package repository

import (
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/notification"
)

type NotificationRepository interface {
	Create(n *notification.Notification) error
	ListByUser(userID string, unreadOnly bool, skip, limit int) ([]notification.Notification, int64, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewDBNotificationRepo(db *gorm.DB) NotificationRepository {
	return &DBNotificationRepo{db: db}
}

func (repo *DBNotificationRepo) Create(n *notification.Notification) error {
	return repo.db.Create(n).Error
}

func (repo *DBNotificationRepo) ListByUser(userID string, unreadOnly bool, skip, limit int) ([]notification.Notification, int64, error) {
	q := repo.db.Model(&notification.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []notification.Notification
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (repo *DBNotificationRepo) MarkRead(id, userID string) error {
	result := repo.db.Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *DBNotificationRepo) MarkAllRead(userID string) error {
	return repo.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}
