package receipt

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status of a submitted expense receipt. The wire values are the Spanish
// labels the portal has always used.
type Status string

const (
	StatusInReview Status = "en_revision"
	StatusAccepted Status = "aceptada"
	StatusRejected Status = "rechazada"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusInReview, StatusAccepted, StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("unknown receipt status %q", raw)
	}
}

// Receipt is an expense receipt a client files for reimbursement review.
type Receipt struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;not null;index"`
	CompanyName string    `gorm:"not null"`
	FolioNumber string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Description string    `gorm:"type:text"`
	TotalAmount float64   `gorm:"not null"`
	ImageName   string
	ImageKey    string
	Status      Status `gorm:"type:varchar(16);not null;default:en_revision;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
