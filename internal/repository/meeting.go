package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/meeting"
)

type MeetingRepository interface {
	Create(m *meeting.Meeting) error
	GetByID(id string) (*meeting.Meeting, error)
	ListUpcoming(userID string, from time.Time) ([]meeting.Meeting, error)
	ListByRequest(requestID string) ([]meeting.Meeting, error)
	Update(m *meeting.Meeting) error
}

type DBMeetingRepo struct {
	db *gorm.DB
}

func NewDBMeetingRepo(db *gorm.DB) MeetingRepository {
	return &DBMeetingRepo{db: db}
}

func (repo *DBMeetingRepo) Create(m *meeting.Meeting) error {
	return repo.db.Create(m).Error
}

func (repo *DBMeetingRepo) GetByID(id string) (*meeting.Meeting, error) {
	var m meeting.Meeting
	if err := repo.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListUpcoming returns future meetings the user organizes or attends.
func (repo *DBMeetingRepo) ListUpcoming(userID string, from time.Time) ([]meeting.Meeting, error) {
	var meetings []meeting.Meeting
	err := repo.db.
		Where("starts_at >= ? AND canceled = false", from).
		Where("organizer_id = ? OR attendees @> ?", userID, `[{"userId":"`+userID+`"}]`).
		Order("starts_at ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (repo *DBMeetingRepo) ListByRequest(requestID string) ([]meeting.Meeting, error) {
	var meetings []meeting.Meeting
	err := repo.db.Where("request_id = ?", requestID).Order("starts_at ASC").Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (repo *DBMeetingRepo) Update(m *meeting.Meeting) error {
	return repo.db.Save(m).Error
}
