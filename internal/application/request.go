package application

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/encodergroup/portal-go/internal/domain/request"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/pkg/types"
)

type RequestService struct {
	repos  *repository.Repos
	notify *NotificationService
	audit  *AuditService
	store  ObjectStore
}

func NewRequestService(repos *repository.Repos, notify *NotificationService, audit *AuditService, store ObjectStore) *RequestService {
	return &RequestService{repos: repos, notify: notify, audit: audit, store: store}
}

// Create stores a new request. Unless the draft flag is set the request is
// submitted immediately and the first history row records the transition;
// a draft instead gets an initial row with no prior status.
func (s *RequestService) Create(actor *types.Claims, req request.CreateRequest) (*request.Request, error) {
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	r := &request.Request{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Priority:    priority,
		Status:      request.StatusDraft,
		Tags:        req.Tags,
		ClientID:    actor.UserID,
	}
	if req.Draft {
		r.StatusHistory = []request.StatusChange{{
			ID:        uuid.NewString(),
			RequestID: r.ID,
			To:        request.StatusDraft,
			Reason:    "created",
			ActorID:   actor.UserID,
			CreatedAt: time.Now(),
		}}
	}
	if err := s.repos.Requests.Create(r); err != nil {
		return nil, err
	}

	if !req.Draft {
		submitted, err := s.repos.Requests.ChangeStatus(r.ID, request.StatusSubmitted, "created", actor.UserID)
		if err != nil {
			return nil, err
		}
		r = submitted
	}

	s.audit.Record(actor.UserID, "request.create", r.ID, map[string]interface{}{
		"title":  r.Title,
		"status": string(r.Status),
	})
	return r, nil
}

func (s *RequestService) Get(actor *types.Claims, id string) (*request.Request, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return nil, ErrForbidden
	}
	return r, nil
}

// List scopes results to the caller's own requests unless the caller is an
// admin, who may filter by any client.
func (s *RequestService) List(actor *types.Claims, f repository.RequestFilter) ([]request.Request, int64, error) {
	if !actor.IsAdmin {
		f.ClientID = actor.UserID
	}
	return s.repos.Requests.List(f)
}

// Update edits request fields. Clients may only edit their own drafts and
// can never touch status or assignment through this path.
func (s *RequestService) Update(actor *types.Claims, id string, req request.UpdateRequest) (*request.Request, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		if r.ClientID != actor.UserID {
			return nil, ErrForbidden
		}
		if r.Status != request.StatusDraft {
			return nil, ErrNotDraft
		}
	}

	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.ServiceType != nil {
		r.ServiceType = *req.ServiceType
	}
	if req.Budget != nil {
		r.Budget = *req.Budget
	}
	if req.Deadline != nil {
		r.Deadline = *req.Deadline
	}
	if req.Priority != nil {
		r.Priority = *req.Priority
	}
	if req.Tags != nil {
		r.Tags = *req.Tags
	}

	if err := s.repos.Requests.Update(r); err != nil {
		return nil, err
	}
	s.audit.Record(actor.UserID, "request.update", r.ID, nil)
	return r, nil
}

func (s *RequestService) Delete(actor *types.Claims, id string) error {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		if r.ClientID != actor.UserID {
			return ErrForbidden
		}
		if r.Status != request.StatusDraft {
			return ErrNotDraft
		}
	}
	if err := s.repos.Requests.Delete(id); err != nil {
		return err
	}
	s.audit.Record(actor.UserID, "request.delete", id, nil)
	return nil
}

// Submit moves a draft into the submitted stage.
func (s *RequestService) Submit(actor *types.Claims, id string) (*request.Request, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return nil, ErrForbidden
	}
	if r.Status != request.StatusDraft {
		return nil, ErrNotDraft
	}

	updated, err := s.repos.Requests.ChangeStatus(id, request.StatusSubmitted, "submitted by client", actor.UserID)
	if err != nil {
		return nil, err
	}
	s.audit.Record(actor.UserID, "request.submit", id, nil)
	return updated, nil
}

// Advance moves a request one step along the main workflow. Admin only.
func (s *RequestService) Advance(actor *types.Claims, id, reason string) (*request.Request, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}

	next := r.Status.Next()
	updated, err := s.repos.Requests.ChangeStatus(id, next, reason, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(updated, r.Status)
	s.audit.Record(actor.UserID, "request.advance", id, map[string]interface{}{
		"from": string(r.Status),
		"to":   string(next),
	})
	return updated, nil
}

// SetStatus moves a request to an arbitrary status. Admin only; setting the
// current status again is rejected.
func (s *RequestService) SetStatus(actor *types.Claims, id, statusValue, reason string) (*request.Request, error) {
	to, err := request.ParseStatus(statusValue)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.Status == to {
		return nil, ErrSameStatus
	}

	updated, err := s.repos.Requests.ChangeStatus(id, to, reason, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(updated, r.Status)
	s.audit.Record(actor.UserID, "request.set_status", id, map[string]interface{}{
		"from": string(r.Status),
		"to":   string(to),
	})
	return updated, nil
}

func (s *RequestService) notifyStatusChange(r *request.Request, from request.Status) {
	s.notify.Notify(r.ClientID, "status_change",
		fmt.Sprintf("Request %q is now %s", r.Title, r.Status.Label()),
		fmt.Sprintf("Status changed from %s to %s", from.Label(), r.Status.Label()),
		r.ID)
}

func (s *RequestService) AddComment(actor *types.Claims, id, body string) (*request.Request, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return nil, ErrForbidden
	}

	c := &request.Comment{RequestID: id, AuthorID: actor.UserID, Body: body}
	if err := s.repos.Requests.AddComment(c); err != nil {
		return nil, err
	}

	if actor.UserID != r.ClientID {
		s.notify.Notify(r.ClientID, "comment",
			fmt.Sprintf("New comment on %q", r.Title), body, r.ID)
	}
	return s.repos.Requests.GetByID(id)
}

// Attach streams a file into the object store and records it on the request.
func (s *RequestService) Attach(ctx context.Context, actor *types.Claims, id, fileName string, body io.Reader, size int64, contentType string) (*request.Attachment, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return nil, ErrForbidden
	}

	key := path.Join(id, uuid.NewString()+path.Ext(fileName))
	if err := s.store.Put(ctx, key, body, size, contentType); err != nil {
		return nil, err
	}

	a := &request.Attachment{
		RequestID:  id,
		FileName:   fileName,
		ObjectKey:  key,
		Size:       size,
		UploadedBy: actor.UserID,
	}
	if err := s.repos.Requests.AddAttachment(a); err != nil {
		_ = s.store.Remove(ctx, key)
		return nil, err
	}
	s.audit.Record(actor.UserID, "request.attach", id, map[string]interface{}{"file": fileName})
	return a, nil
}

func (s *RequestService) OpenAttachment(ctx context.Context, actor *types.Claims, id, attachmentID string) (*request.Attachment, io.ReadCloser, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsAdmin && r.ClientID != actor.UserID {
		return nil, nil, ErrForbidden
	}
	for i := range r.Attachments {
		if r.Attachments[i].ID == attachmentID {
			rc, err := s.store.Get(ctx, r.Attachments[i].ObjectKey)
			if err != nil {
				return nil, nil, err
			}
			return &r.Attachments[i], rc, nil
		}
	}
	return nil, nil, ErrAttachmentNotFound
}

// Assign sets the staff member responsible for a request. Admin only.
func (s *RequestService) Assign(actor *types.Claims, id, assigneeID string) (*request.Request, error) {
	r, err := s.repos.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	r.AssignedTo = assigneeID
	if err := s.repos.Requests.Update(r); err != nil {
		return nil, err
	}
	s.audit.Record(actor.UserID, "request.assign", id, map[string]interface{}{"assignee": assigneeID})
	return r, nil
}

// Statuses describes every workflow status for frontend pickers.
func (s *RequestService) Statuses() []request.StatusInfo {
	out := make([]request.StatusInfo, 0, len(request.AllStatuses))
	for _, st := range request.AllStatuses {
		out = append(out, request.StatusInfo{
			Value: string(st),
			Label: st.Label(),
			Color: st.Color(),
		})
	}
	return out
}
