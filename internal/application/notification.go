package application

import (
	log "github.com/sirupsen/logrus"

	"github.com/encodergroup/portal-go/internal/domain/notification"
	"github.com/encodergroup/portal-go/internal/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
	pub           Publisher
}

func NewNotificationService(notifications repository.NotificationRepository, pub Publisher) *NotificationService {
	return &NotificationService{notifications: notifications, pub: pub}
}

// Notify stores a notification and pushes it to the user's live
// connections. Failures are logged, never surfaced to the caller; a missed
// notification must not fail the triggering operation.
func (s *NotificationService) Notify(userID, kind, title, body, requestID string) {
	n := &notification.Notification{
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		RequestID: requestID,
	}
	if err := s.notifications.Create(n); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to store notification")
		return
	}
	if s.pub != nil {
		s.pub.Publish(userID, n.ToView())
	}
}

func (s *NotificationService) List(userID string, unreadOnly bool, skip, limit int) ([]notification.Notification, int64, error) {
	return s.notifications.ListByUser(userID, unreadOnly, skip, limit)
}

func (s *NotificationService) MarkRead(id, userID string) error {
	return s.notifications.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notifications.MarkAllRead(userID)
}
