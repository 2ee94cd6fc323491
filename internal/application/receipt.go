package application

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/encodergroup/portal-go/internal/domain/receipt"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/pkg/types"
)

type ReceiptService struct {
	repos *repository.Repos
	audit *AuditService
	store ObjectStore
}

func NewReceiptService(repos *repository.Repos, audit *AuditService, store ObjectStore) *ReceiptService {
	return &ReceiptService{repos: repos, audit: audit, store: store}
}

// Create files a receipt for the caller. An optional scanned image goes to
// the object store; imageName empty means no image was uploaded. New
// receipts always start in review.
func (s *ReceiptService) Create(ctx context.Context, actor *types.Claims, req receipt.CreateRequest,
	imageName string, image io.Reader, size int64, contentType string) (*receipt.Receipt, error) {

	r := &receipt.Receipt{
		ID:          uuid.NewString(),
		UserID:      actor.UserID,
		CompanyName: req.CompanyName,
		FolioNumber: req.FolioNumber,
		Date:        req.Date,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		Status:      receipt.StatusInReview,
	}

	if imageName != "" {
		key := path.Join("receipts", r.ID, uuid.NewString()+path.Ext(imageName))
		if err := s.store.Put(ctx, key, image, size, contentType); err != nil {
			return nil, err
		}
		r.ImageName = imageName
		r.ImageKey = key
	}

	if err := s.repos.Receipts.Create(r); err != nil {
		if r.ImageKey != "" {
			_ = s.store.Remove(ctx, r.ImageKey)
		}
		return nil, err
	}

	s.audit.Record(actor.UserID, "receipt.create", r.ID, map[string]interface{}{
		"company": r.CompanyName,
		"amount":  r.TotalAmount,
	})
	return r, nil
}

func (s *ReceiptService) Get(actor *types.Claims, id string) (*receipt.Receipt, error) {
	r, err := s.repos.Receipts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return r, nil
}

// List returns the caller's own receipts, newest first.
func (s *ReceiptService) List(actor *types.Claims) ([]receipt.Receipt, error) {
	return s.repos.Receipts.ListByUser(actor.UserID)
}

func (s *ReceiptService) Stats(actor *types.Claims) (*receipt.Stats, error) {
	return s.repos.Receipts.StatsByUser(actor.UserID)
}

// Update edits receipt fields; a new image replaces the stored one.
func (s *ReceiptService) Update(ctx context.Context, actor *types.Claims, id string, req receipt.UpdateRequest,
	imageName string, image io.Reader, size int64, contentType string) (*receipt.Receipt, error) {

	r, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		r.CompanyName = *req.CompanyName
	}
	if req.FolioNumber != nil {
		r.FolioNumber = *req.FolioNumber
	}
	if req.Date != nil {
		r.Date = *req.Date
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.TotalAmount != nil {
		r.TotalAmount = *req.TotalAmount
	}

	if imageName != "" {
		key := path.Join("receipts", r.ID, uuid.NewString()+path.Ext(imageName))
		if err := s.store.Put(ctx, key, image, size, contentType); err != nil {
			return nil, err
		}
		if r.ImageKey != "" {
			_ = s.store.Remove(ctx, r.ImageKey)
		}
		r.ImageName = imageName
		r.ImageKey = key
	}

	if err := s.repos.Receipts.Update(r); err != nil {
		return nil, err
	}
	s.audit.Record(actor.UserID, "receipt.update", r.ID, nil)
	return r, nil
}

// SetStatus moves a receipt through the review workflow.
func (s *ReceiptService) SetStatus(actor *types.Claims, id, statusValue string) (*receipt.Receipt, error) {
	to, err := receipt.ParseStatus(statusValue)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	r, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	r.Status = to
	if err := s.repos.Receipts.Update(r); err != nil {
		return nil, err
	}
	s.audit.Record(actor.UserID, "receipt.set_status", r.ID, map[string]interface{}{
		"status": string(to),
	})
	return r, nil
}

func (s *ReceiptService) Delete(ctx context.Context, actor *types.Claims, id string) error {
	r, err := s.Get(actor, id)
	if err != nil {
		return err
	}
	if err := s.repos.Receipts.Delete(id); err != nil {
		return err
	}
	if r.ImageKey != "" {
		_ = s.store.Remove(ctx, r.ImageKey)
	}
	s.audit.Record(actor.UserID, "receipt.delete", id, nil)
	return nil
}

// OpenImage streams the stored receipt image.
func (s *ReceiptService) OpenImage(ctx context.Context, actor *types.Claims, id string) (*receipt.Receipt, io.ReadCloser, error) {
	r, err := s.Get(actor, id)
	if err != nil {
		return nil, nil, err
	}
	if r.ImageKey == "" {
		return nil, nil, ErrImageNotFound
	}
	body, err := s.store.Get(ctx, r.ImageKey)
	if err != nil {
		return nil, nil, err
	}
	return r, body, nil
}
