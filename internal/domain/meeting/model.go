package meeting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Meeting struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	RequestID   string `gorm:"type:uuid;index"`
	OrganizerID string `gorm:"type:uuid;not null"`
	// Attendees holds user ids and display names as a JSON array.
	Attendees  datatypes.JSON `gorm:"type:jsonb"`
	StartsAt   time.Time      `gorm:"not null;index"`
	DurationM  int            `gorm:"default:30"`
	MeetingURL string
	Canceled   bool `gorm:"default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
