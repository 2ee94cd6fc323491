package repository

import (
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/user"
)

type UserRepository interface {
	Create(u *user.User) error
	GetByID(id string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	List(skip, limit int) ([]user.User, int64, error)
	Update(u *user.User) error
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewDBUserRepo(db *gorm.DB) UserRepository {
	return &DBUserRepo{db: db}
}

func (repo *DBUserRepo) Create(u *user.User) error {
	return repo.db.Create(u).Error
}

func (repo *DBUserRepo) GetByID(id string) (*user.User, error) {
	var u user.User
	if err := repo.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *DBUserRepo) GetByEmail(email string) (*user.User, error) {
	var u user.User
	if err := repo.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *DBUserRepo) List(skip, limit int) ([]user.User, int64, error) {
	var total int64
	if err := repo.db.Model(&user.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []user.User
	err := repo.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (repo *DBUserRepo) Update(u *user.User) error {
	return repo.db.Save(u).Error
}
