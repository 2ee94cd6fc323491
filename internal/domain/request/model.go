package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Request struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	ServiceType string
	Budget      string
	Deadline    string
	Priority    string         `gorm:"default:medium"`
	Status      Status         `gorm:"type:varchar(32);not null;index"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	ClientID    string         `gorm:"type:uuid;not null;index"`
	AssignedTo  string         `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	StatusHistory []StatusChange `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Comments      []Comment      `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Attachments   []Attachment   `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// StatusChange is one row of the append-only status history ledger. Rows are
// only ever inserted, in the same transaction as the status column update.
type StatusChange struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	RequestID string `gorm:"type:uuid;not null;index"`
	From      Status `gorm:"column:from_status;type:varchar(32)"`
	To        Status `gorm:"column:to_status;type:varchar(32);not null"`
	Reason    string
	ActorID   string `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (s *StatusChange) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Comment struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	RequestID string `gorm:"type:uuid;not null;index"`
	AuthorID  string `gorm:"type:uuid;not null"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Attachment struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	RequestID  string `gorm:"type:uuid;not null;index"`
	FileName   string `gorm:"not null"`
	ObjectKey  string `gorm:"not null"`
	Size       int64
	UploadedBy string `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
