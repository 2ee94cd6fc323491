package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encodergroup/portal-go/internal/domain/meeting"
	"github.com/encodergroup/portal-go/internal/domain/request"
)

func TestScheduleMeetingNotifiesAttendees(t *testing.T) {
	services, pub := newTestServices(t)
	owner := clientClaims()
	admin := adminClaims()

	r, err := services.Requests.Create(owner, request.CreateRequest{Title: "Kickoff", Description: "x"})
	require.NoError(t, err)

	m, err := services.Meetings.Schedule(admin, meeting.CreateRequest{
		Title:     "Kickoff call",
		RequestID: r.ID,
		StartsAt:  time.Now().Add(48 * time.Hour),
		Attendees: []meeting.Attendee{
			{UserID: owner.UserID, Name: "Client"},
			{UserID: admin.UserID, Name: "PM"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, m.OrganizerID)
	assert.Equal(t, 30, m.DurationM)

	// The organizer is not notified about their own meeting.
	assert.Equal(t, 1, pub.count(owner.UserID))
	assert.Equal(t, 0, pub.count(admin.UserID))

	views := m.ToView()
	require.Len(t, views.Attendees, 2)
	assert.Equal(t, owner.UserID, views.Attendees[0].UserID)
}

func TestScheduleMeetingChecksRequestAccess(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	r, err := services.Requests.Create(owner, request.CreateRequest{Title: "Private", Description: "x"})
	require.NoError(t, err)

	_, err = services.Meetings.Schedule(clientClaims(), meeting.CreateRequest{
		Title:     "Sneaky",
		RequestID: r.ID,
		StartsAt:  time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpcomingExcludesCanceledAndPast(t *testing.T) {
	services, _ := newTestServices(t)
	admin := adminClaims()

	future, err := services.Meetings.Schedule(admin, meeting.CreateRequest{
		Title:    "Future",
		StartsAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	toCancel, err := services.Meetings.Schedule(admin, meeting.CreateRequest{
		Title:    "Canceled",
		StartsAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = services.Meetings.Cancel(admin, toCancel.ID)
	require.NoError(t, err)

	upcoming, err := services.Meetings.Upcoming(admin)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, future.ID, upcoming[0].ID)
}

func TestCancelOnlyByOrganizerOrAdmin(t *testing.T) {
	services, _ := newTestServices(t)
	admin := adminClaims()

	m, err := services.Meetings.Schedule(admin, meeting.CreateRequest{
		Title:    "Review",
		StartsAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = services.Meetings.Cancel(clientClaims(), m.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	canceled, err := services.Meetings.Cancel(admin, m.ID)
	require.NoError(t, err)
	assert.True(t, canceled.Canceled)
}
