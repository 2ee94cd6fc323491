package application

import (
	"github.com/encodergroup/portal-go/internal/domain/task"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/pkg/types"
)

type TaskService struct {
	repos *repository.Repos
}

func NewTaskService(repos *repository.Repos) *TaskService {
	return &TaskService{repos: repos}
}

func (s *TaskService) checkRequestAccess(actor *types.Claims, requestID string) error {
	r, err := s.repos.Requests.GetByID(requestID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

func (s *TaskService) Create(actor *types.Claims, requestID string, req task.CreateRequest) (*task.Task, error) {
	if err := s.checkRequestAccess(actor, requestID); err != nil {
		return nil, err
	}

	column := task.ColumnTodo
	if req.Column != "" {
		var err error
		column, err = task.ParseColumn(req.Column)
		if err != nil {
			return nil, ErrInvalidColumn
		}
	}

	t := &task.Task{
		RequestID:  requestID,
		Title:      req.Title,
		Body:       req.Body,
		Column:     column,
		AssigneeID: req.AssigneeID,
	}
	if err := s.repos.Tasks.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Board groups a request's tasks by column, each ordered by position.
func (s *TaskService) Board(actor *types.Claims, requestID string) (*task.Board, error) {
	if err := s.checkRequestAccess(actor, requestID); err != nil {
		return nil, err
	}

	tasks, err := s.repos.Tasks.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}

	board := &task.Board{
		Todo:       []task.View{},
		InProgress: []task.View{},
		Done:       []task.View{},
	}
	for i := range tasks {
		v := tasks[i].ToView()
		switch tasks[i].Column {
		case task.ColumnTodo:
			board.Todo = append(board.Todo, v)
		case task.ColumnInProgress:
			board.InProgress = append(board.InProgress, v)
		case task.ColumnDone:
			board.Done = append(board.Done, v)
		}
	}
	return board, nil
}

func (s *TaskService) Update(actor *types.Claims, id string, req task.UpdateRequest) (*task.Task, error) {
	t, err := s.repos.Tasks.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRequestAccess(actor, t.RequestID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Body != nil {
		t.Body = *req.Body
	}
	if req.AssigneeID != nil {
		t.AssigneeID = *req.AssigneeID
	}
	if err := s.repos.Tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Move(actor *types.Claims, id string, req task.MoveRequest) (*task.Task, error) {
	column, err := task.ParseColumn(req.Column)
	if err != nil {
		return nil, ErrInvalidColumn
	}

	t, err := s.repos.Tasks.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRequestAccess(actor, t.RequestID); err != nil {
		return nil, err
	}

	return s.repos.Tasks.Move(id, column, req.Position)
}

func (s *TaskService) Delete(actor *types.Claims, id string) error {
	t, err := s.repos.Tasks.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.checkRequestAccess(actor, t.RequestID); err != nil {
		return err
	}
	return s.repos.Tasks.Delete(id)
}
