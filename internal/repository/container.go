package repository

import (
	"time"

	"gorm.io/gorm"
)

// Repos bundles every repository behind one handle so handlers and services
// take a single dependency.
type Repos struct {
	Requests      RequestRepository
	Users         UserRepository
	Meetings      MeetingRepository
	Tasks         TaskRepository
	Notifications NotificationRepository
	Receipts      ReceiptRepository
	Audit         AuditRepository
}

func New(db *gorm.DB) *Repos {
	return &Repos{
		Requests:      NewDBRequestRepo(db),
		Users:         NewDBUserRepo(db),
		Meetings:      NewDBMeetingRepo(db),
		Tasks:         NewDBTaskRepo(db),
		Notifications: NewDBNotificationRepo(db),
		Receipts:      NewDBReceiptRepo(db),
		Audit:         NewDBAuditRepo(db),
	}
}

// NewMemory builds the in-memory backend, optionally seeded from a YAML
// fixture and with simulated latency on request operations.
func NewMemory(seedPath string, latency time.Duration) (*Repos, error) {
	requests, err := NewMemoryRequestRepo(seedPath, latency)
	if err != nil {
		return nil, err
	}
	return &Repos{
		Requests:      requests,
		Users:         NewMemoryUserRepo(),
		Meetings:      NewMemoryMeetingRepo(),
		Tasks:         NewMemoryTaskRepo(),
		Notifications: NewMemoryNotificationRepo(),
		Receipts:      NewMemoryReceiptRepo(),
		Audit:         NewMemoryAuditRepo(),
	}, nil
}
