package task

import "time"

type CreateRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body"`
	Column     string `json:"column"`
	AssigneeID string `json:"assigneeId"`
}

type UpdateRequest struct {
	Title      *string `json:"title"`
	Body       *string `json:"body"`
	AssigneeID *string `json:"assigneeId"`
}

type MoveRequest struct {
	Column   string `json:"column" binding:"required"`
	Position int    `json:"position"`
}

type View struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	Column     string    `json:"column"`
	Position   int       `json:"position"`
	AssigneeID string    `json:"assigneeId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Board struct {
	Todo       []View `json:"todo"`
	InProgress []View `json:"inProgress"`
	Done       []View `json:"done"`
}

func (t *Task) ToView() View {
	return View{
		ID:         t.ID,
		RequestID:  t.RequestID,
		Title:      t.Title,
		Body:       t.Body,
		Column:     string(t.Column),
		Position:   t.Position,
		AssigneeID: t.AssigneeID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
