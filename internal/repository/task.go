package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/encodergroup/portal-go/internal/domain/task"
)

type TaskRepository interface {
	Create(t *task.Task) error
	GetByID(id string) (*task.Task, error)
	ListByRequest(requestID string) ([]task.Task, error)
	Update(t *task.Task) error
	Delete(id string) error

	// Move places the task into the given column at the given position and
	// reindexes both affected columns so positions stay dense.
	Move(id string, column task.Column, position int) (*task.Task, error)
}

type DBTaskRepo struct {
	db *gorm.DB
}

func NewDBTaskRepo(db *gorm.DB) TaskRepository {
	return &DBTaskRepo{db: db}
}

func (repo *DBTaskRepo) Create(t *task.Task) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&task.Task{}).
			Where("request_id = ? AND board_column = ?", t.RequestID, t.Column).
			Count(&count).Error
		if err != nil {
			return err
		}
		t.Position = int(count)
		return tx.Create(t).Error
	})
}

func (repo *DBTaskRepo) GetByID(id string) (*task.Task, error) {
	var t task.Task
	if err := repo.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (repo *DBTaskRepo) ListByRequest(requestID string) ([]task.Task, error) {
	var tasks []task.Task
	err := repo.db.
		Where("request_id = ?", requestID).
		Order("board_column ASC, position ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *DBTaskRepo) Update(t *task.Task) error {
	return repo.db.Save(t).Error
}

func (repo *DBTaskRepo) Delete(id string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var t task.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&t, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&t).Error; err != nil {
			return err
		}
		return tx.Model(&task.Task{}).
			Where("request_id = ? AND board_column = ? AND position > ?", t.RequestID, t.Column, t.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

func (repo *DBTaskRepo) Move(id string, column task.Column, position int) (*task.Task, error) {
	var moved task.Task
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&moved, "id = ?", id).Error; err != nil {
			return err
		}

		var count int64
		err := tx.Model(&task.Task{}).
			Where("request_id = ? AND board_column = ? AND id <> ?", moved.RequestID, column, moved.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if position < 0 {
			position = 0
		}
		if position > int(count) {
			position = int(count)
		}

		// Close the gap in the source column.
		err = tx.Model(&task.Task{}).
			Where("request_id = ? AND board_column = ? AND position > ?", moved.RequestID, moved.Column, moved.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
		if err != nil {
			return err
		}

		// Open a slot in the target column.
		err = tx.Model(&task.Task{}).
			Where("request_id = ? AND board_column = ? AND position >= ? AND id <> ?", moved.RequestID, column, position, moved.ID).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
		if err != nil {
			return err
		}

		moved.Column = column
		moved.Position = position
		return tx.Save(&moved).Error
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}
