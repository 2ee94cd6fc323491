package repository

import (
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/receipt"
)

type ReceiptRepository interface {
	Create(r *receipt.Receipt) error
	GetByID(id string) (*receipt.Receipt, error)
	ListByUser(userID string) ([]receipt.Receipt, error)
	Update(r *receipt.Receipt) error
	Delete(id string) error
	StatsByUser(userID string) (*receipt.Stats, error)
}

type DBReceiptRepo struct {
	db *gorm.DB
}

func NewDBReceiptRepo(db *gorm.DB) ReceiptRepository {
	return &DBReceiptRepo{db: db}
}

func (repo *DBReceiptRepo) Create(r *receipt.Receipt) error {
	return repo.db.Create(r).Error
}

func (repo *DBReceiptRepo) GetByID(id string) (*receipt.Receipt, error) {
	var r receipt.Receipt
	if err := repo.db.First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *DBReceiptRepo) ListByUser(userID string) ([]receipt.Receipt, error) {
	var receipts []receipt.Receipt
	err := repo.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (repo *DBReceiptRepo) Update(r *receipt.Receipt) error {
	return repo.db.Save(r).Error
}

func (repo *DBReceiptRepo) Delete(id string) error {
	result := repo.db.Delete(&receipt.Receipt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StatsByUser aggregates in one query; the amount only sums accepted
// receipts.
func (repo *DBReceiptRepo) StatsByUser(userID string) (*receipt.Stats, error) {
	var stats receipt.Stats
	err := repo.db.Model(&receipt.Receipt{}).
		Where("user_id = ?", userID).
		Select(`COUNT(*) AS total_receipts,
			COUNT(*) FILTER (WHERE status = 'en_revision') AS en_revision,
			COUNT(*) FILTER (WHERE status = 'aceptada') AS aceptadas,
			COUNT(*) FILTER (WHERE status = 'rechazada') AS rechazadas,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'aceptada'), 0) AS total_amount`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
