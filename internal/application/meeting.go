package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/encodergroup/portal-go/internal/domain/meeting"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/pkg/types"
)

type MeetingService struct {
	repos  *repository.Repos
	notify *NotificationService
}

func NewMeetingService(repos *repository.Repos, notify *NotificationService) *MeetingService {
	return &MeetingService{repos: repos, notify: notify}
}

func (s *MeetingService) Schedule(actor *types.Claims, req meeting.CreateRequest) (*meeting.Meeting, error) {
	if req.RequestID != "" {
		r, err := s.repos.Requests.GetByID(req.RequestID)
		if err != nil {
			return nil, err
		}
		if !actor.IsAdmin && r.ClientID != actor.UserID {
			return nil, ErrForbidden
		}
	}

	attendees, err := json.Marshal(req.Attendees)
	if err != nil {
		return nil, err
	}
	duration := req.DurationM
	if duration <= 0 {
		duration = 30
	}

	m := &meeting.Meeting{
		Title:       req.Title,
		Description: req.Description,
		RequestID:   req.RequestID,
		OrganizerID: actor.UserID,
		Attendees:   attendees,
		StartsAt:    req.StartsAt,
		DurationM:   duration,
		MeetingURL:  req.MeetingURL,
	}
	if err := s.repos.Meetings.Create(m); err != nil {
		return nil, err
	}

	for _, a := range req.Attendees {
		if a.UserID == actor.UserID {
			continue
		}
		s.notify.Notify(a.UserID, "meeting",
			fmt.Sprintf("Meeting scheduled: %s", m.Title),
			fmt.Sprintf("Starts at %s", m.StartsAt.Format(time.RFC1123)),
			m.RequestID)
	}
	return m, nil
}

func (s *MeetingService) Upcoming(actor *types.Claims) ([]meeting.Meeting, error) {
	return s.repos.Meetings.ListUpcoming(actor.UserID, time.Now())
}

func (s *MeetingService) ForRequest(actor *types.Claims, requestID string) ([]meeting.Meeting, error) {
	r, err := s.repos.Requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return nil, ErrForbidden
	}
	return s.repos.Meetings.ListByRequest(requestID)
}

// Cancel marks a meeting canceled. Only the organizer or an admin may do so.
func (s *MeetingService) Cancel(actor *types.Claims, id string) (*meeting.Meeting, error) {
	m, err := s.repos.Meetings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && m.OrganizerID != actor.UserID {
		return nil, ErrForbidden
	}
	m.Canceled = true
	if err := s.repos.Meetings.Update(m); err != nil {
		return nil, err
	}

	for _, a := range m.ToView().Attendees {
		if a.UserID == actor.UserID {
			continue
		}
		s.notify.Notify(a.UserID, "meeting",
			fmt.Sprintf("Meeting canceled: %s", m.Title), "", m.RequestID)
	}
	return m, nil
}
