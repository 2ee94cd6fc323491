package repository

import (
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/audit"
)

type AuditRepository interface {
	Create(e *audit.Entry) error
	List(skip, limit int) ([]audit.Entry, int64, error)
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewDBAuditRepo(db *gorm.DB) AuditRepository {
	return &DBAuditRepo{db: db}
}

func (repo *DBAuditRepo) Create(e *audit.Entry) error {
	return repo.db.Create(e).Error
}

func (repo *DBAuditRepo) List(skip, limit int) ([]audit.Entry, int64, error) {
	var total int64
	if err := repo.db.Model(&audit.Entry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []audit.Entry
	err := repo.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
