package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/encodergroup/portal-go/internal/domain/request"
)

// RequestFilter narrows List results. Zero values mean no filtering.
type RequestFilter struct {
	Status   *request.Status
	ClientID string
	Search   string
	Skip     int
	Limit    int
}

type RequestRepository interface {
	Create(r *request.Request) error
	GetByID(id string) (*request.Request, error)
	List(f RequestFilter) ([]request.Request, int64, error)
	Update(r *request.Request) error
	Delete(id string) error

	// ChangeStatus updates the status column and appends the matching
	// history row in one transaction, then returns the fresh record.
	ChangeStatus(id string, to request.Status, reason, actorID string) (*request.Request, error)

	AddComment(c *request.Comment) error
	AddAttachment(a *request.Attachment) error
}

type DBRequestRepo struct {
	db *gorm.DB
}

func NewDBRequestRepo(db *gorm.DB) RequestRepository {
	return &DBRequestRepo{db: db}
}

func (repo *DBRequestRepo) Create(r *request.Request) error {
	return repo.db.Create(r).Error
}

func (repo *DBRequestRepo) GetByID(id string) (*request.Request, error) {
	var r request.Request
	err := repo.db.
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Attachments").
		First(&r, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *DBRequestRepo) List(f RequestFilter) ([]request.Request, int64, error) {
	q := repo.db.Model(&request.Request{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// A zero limit means "no limit", like the memory backend; gorm wants -1
	// to drop the LIMIT clause.
	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}

	var requests []request.Request
	err := q.
		Preload("Comments").
		Preload("Attachments").
		Order("created_at DESC").
		Offset(f.Skip).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (repo *DBRequestRepo) Update(r *request.Request) error {
	return repo.db.Save(r).Error
}

func (repo *DBRequestRepo) Delete(id string) error {
	result := repo.db.Select(clause.Associations).Delete(&request.Request{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *DBRequestRepo) ChangeStatus(id string, to request.Status, reason, actorID string) (*request.Request, error) {
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var r request.Request
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&r, "id = ?", id).Error; err != nil {
			return err
		}

		change := request.StatusChange{
			RequestID: r.ID,
			From:      r.Status,
			To:        to,
			Reason:    reason,
			ActorID:   actorID,
		}
		if err := tx.Model(&r).Update("status", to).Error; err != nil {
			return err
		}
		return tx.Create(&change).Error
	})
	if err != nil {
		return nil, err
	}
	return repo.GetByID(id)
}

func (repo *DBRequestRepo) AddComment(c *request.Comment) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var r request.Request
		if err := tx.Select("id").First(&r, "id = ?", c.RequestID).Error; err != nil {
			return err
		}
		return tx.Create(c).Error
	})
}

func (repo *DBRequestRepo) AddAttachment(a *request.Attachment) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var r request.Request
		if err := tx.Select("id").First(&r, "id = ?", a.RequestID).Error; err != nil {
			return err
		}
		return tx.Create(a).Error
	})
}
