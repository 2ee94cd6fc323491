package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "in_progress"
	ColumnDone       Column = "done"
)

func ParseColumn(s string) (Column, error) {
	switch Column(s) {
	case ColumnTodo, ColumnInProgress, ColumnDone:
		return Column(s), nil
	}
	return "", fmt.Errorf("unknown column %q", s)
}

// Task is a Kanban board item. Position orders tasks within a column,
// starting at 0 with no gaps.
type Task struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	RequestID  string `gorm:"type:uuid;not null;index"`
	Title      string `gorm:"not null"`
	Body       string `gorm:"type:text"`
	Column     Column `gorm:"column:board_column;type:varchar(16);not null;index"`
	Position   int    `gorm:"not null"`
	AssigneeID string `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
