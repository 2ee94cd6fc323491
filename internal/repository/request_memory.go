package repository

import (
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/request"
)

// MemoryRequestRepo keeps requests in process memory. It backs local
// development without a database and doubles as the test fixture; lookups
// that miss return gorm.ErrRecordNotFound so handlers map errors the same
// way for both backends.
type MemoryRequestRepo struct {
	mu       sync.Mutex
	requests []*request.Request
	latency  time.Duration
}

type seedRequest struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	ServiceType string   `yaml:"serviceType"`
	Budget      string   `yaml:"budget"`
	Deadline    string   `yaml:"deadline"`
	Priority    string   `yaml:"priority"`
	Status      string   `yaml:"status"`
	Tags        []string `yaml:"tags"`
	ClientID    string   `yaml:"clientId"`
	AssignedTo  string   `yaml:"assignedTo"`
}

type seedFile struct {
	Requests []seedRequest `yaml:"requests"`
}

func NewMemoryRequestRepo(seedPath string, latency time.Duration) (*MemoryRequestRepo, error) {
	repo := &MemoryRequestRepo{latency: latency}
	if seedPath == "" {
		return repo, nil
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, err
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, err
	}

	now := time.Now()
	for i, s := range seed.Requests {
		status := request.StatusSubmitted
		if s.Status != "" {
			status, err = request.ParseStatus(s.Status)
			if err != nil {
				return nil, err
			}
		}
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		r := &request.Request{
			ID:          id,
			Title:       s.Title,
			Description: s.Description,
			ServiceType: s.ServiceType,
			Budget:      s.Budget,
			Deadline:    s.Deadline,
			Priority:    s.Priority,
			Status:      status,
			Tags:        s.Tags,
			ClientID:    s.ClientID,
			AssignedTo:  s.AssignedTo,
			CreatedAt:   now.Add(-time.Duration(len(seed.Requests)-i) * time.Hour),
			UpdatedAt:   now,
		}
		repo.requests = append(repo.requests, r)
	}
	return repo, nil
}

func (repo *MemoryRequestRepo) sleep() {
	if repo.latency > 0 {
		time.Sleep(repo.latency)
	}
}

func (repo *MemoryRequestRepo) find(id string) (int, *request.Request) {
	for i, r := range repo.requests {
		if r.ID == id {
			return i, r
		}
	}
	return -1, nil
}

func clone(r *request.Request) *request.Request {
	cp := *r
	cp.Tags = append([]string(nil), r.Tags...)
	cp.StatusHistory = append([]request.StatusChange(nil), r.StatusHistory...)
	cp.Comments = append([]request.Comment(nil), r.Comments...)
	cp.Attachments = append([]request.Attachment(nil), r.Attachments...)
	return &cp
}

func (repo *MemoryRequestRepo) Create(r *request.Request) error {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	repo.requests = append(repo.requests, clone(r))
	return nil
}

func (repo *MemoryRequestRepo) GetByID(id string) (*request.Request, error) {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, r := repo.find(id)
	if r == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(r), nil
}

func (repo *MemoryRequestRepo) List(f RequestFilter) ([]request.Request, int64, error) {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := make([]*request.Request, 0, len(repo.requests))
	for _, r := range repo.requests {
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		if f.ClientID != "" && r.ClientID != f.ClientID {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(r.Title), needle) &&
				!strings.Contains(strings.ToLower(r.Description), needle) {
				continue
			}
		}
		matched = append(matched, r)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if f.Skip >= len(matched) {
		return []request.Request{}, total, nil
	}
	matched = matched[f.Skip:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}

	page := make([]request.Request, 0, len(matched))
	for _, r := range matched {
		page = append(page, *clone(r))
	}
	return page, total, nil
}

func (repo *MemoryRequestRepo) Update(r *request.Request) error {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	i, existing := repo.find(r.ID)
	if existing == nil {
		return gorm.ErrRecordNotFound
	}
	cp := clone(r)
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	repo.requests[i] = cp
	return nil
}

func (repo *MemoryRequestRepo) Delete(id string) error {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	i, existing := repo.find(id)
	if existing == nil {
		return gorm.ErrRecordNotFound
	}
	repo.requests = append(repo.requests[:i], repo.requests[i+1:]...)
	return nil
}

func (repo *MemoryRequestRepo) ChangeStatus(id string, to request.Status, reason, actorID string) (*request.Request, error) {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, r := repo.find(id)
	if r == nil {
		return nil, gorm.ErrRecordNotFound
	}

	now := time.Now()
	r.StatusHistory = append(r.StatusHistory, request.StatusChange{
		ID:        uuid.NewString(),
		RequestID: r.ID,
		From:      r.Status,
		To:        to,
		Reason:    reason,
		ActorID:   actorID,
		CreatedAt: now,
	})
	r.Status = to
	r.UpdatedAt = now
	return clone(r), nil
}

func (repo *MemoryRequestRepo) AddComment(c *request.Comment) error {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, r := repo.find(c.RequestID)
	if r == nil {
		return gorm.ErrRecordNotFound
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	// Newest first, matching the detail view ordering.
	r.Comments = append([]request.Comment{*c}, r.Comments...)
	return nil
}

func (repo *MemoryRequestRepo) AddAttachment(a *request.Attachment) error {
	repo.sleep()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, r := repo.find(a.RequestID)
	if r == nil {
		return gorm.ErrRecordNotFound
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	r.Attachments = append(r.Attachments, *a)
	return nil
}
