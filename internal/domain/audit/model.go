package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry records one API action for the admin audit trail. Entries are
// written asynchronously and never updated.
type Entry struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	ActorID   string         `gorm:"type:uuid;index"`
	Action    string         `gorm:"not null;index"`
	Resource  string         `gorm:"not null"`
	Detail    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type View struct {
	ID        string          `json:"id"`
	ActorID   string          `json:"actorId,omitempty"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	Detail    json.RawMessage `json:"detail,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (e *Entry) ToView() View {
	return View{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    e.Action,
		Resource:  e.Resource,
		Detail:    json.RawMessage(e.Detail),
		CreatedAt: e.CreatedAt,
	}
}
