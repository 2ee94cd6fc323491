package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index"`
	Kind      string `gorm:"not null"`
	Title     string `gorm:"not null"`
	Body      string
	RequestID string `gorm:"type:uuid"`
	Read      bool   `gorm:"default:false;index"`
	CreatedAt time.Time
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

type View struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notification) ToView() View {
	return View{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		RequestID: n.RequestID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
