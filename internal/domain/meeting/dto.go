package meeting

import (
	"encoding/json"
	"time"
)

type Attendee struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type CreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	RequestID   string     `json:"requestId"`
	Attendees   []Attendee `json:"attendees"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	DurationM   int        `json:"durationMinutes"`
	MeetingURL  string     `json:"meetingUrl"`
}

type View struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	RequestID   string     `json:"requestId,omitempty"`
	OrganizerID string     `json:"organizerId"`
	Attendees   []Attendee `json:"attendees"`
	StartsAt    time.Time  `json:"startsAt"`
	DurationM   int        `json:"durationMinutes"`
	MeetingURL  string     `json:"meetingUrl,omitempty"`
	Canceled    bool       `json:"canceled"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (m *Meeting) ToView() View {
	v := View{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		RequestID:   m.RequestID,
		OrganizerID: m.OrganizerID,
		Attendees:   []Attendee{},
		StartsAt:    m.StartsAt,
		DurationM:   m.DurationM,
		MeetingURL:  m.MeetingURL,
		Canceled:    m.Canceled,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.Attendees) > 0 {
		_ = json.Unmarshal(m.Attendees, &v.Attendees)
	}
	return v
}
