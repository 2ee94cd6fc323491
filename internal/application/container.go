package application

import (
	"context"
	"io"

	"github.com/encodergroup/portal-go/internal/repository"
)

// Publisher pushes a payload to one user's live connections. Satisfied by
// the websocket hub; tests plug in a recording fake.
type Publisher interface {
	Publish(userID string, payload interface{})
}

// ObjectStore abstracts attachment blob storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

type Services struct {
	Requests      *RequestService
	Users         *UserService
	Meetings      *MeetingService
	Tasks         *TaskService
	Notifications *NotificationService
	Receipts      *ReceiptService
	Audit         *AuditService
}

func New(repos *repository.Repos, store ObjectStore, pub Publisher) *Services {
	auditSvc := NewAuditService(repos.Audit)
	notifSvc := NewNotificationService(repos.Notifications, pub)
	return &Services{
		Requests:      NewRequestService(repos, notifSvc, auditSvc, store),
		Users:         NewUserService(repos.Users, auditSvc),
		Meetings:      NewMeetingService(repos, notifSvc),
		Tasks:         NewTaskService(repos),
		Notifications: notifSvc,
		Receipts:      NewReceiptService(repos, auditSvc, store),
		Audit:         auditSvc,
	}
}
