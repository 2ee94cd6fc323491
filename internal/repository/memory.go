package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/audit"
	"github.com/encodergroup/portal-go/internal/domain/meeting"
	"github.com/encodergroup/portal-go/internal/domain/notification"
	"github.com/encodergroup/portal-go/internal/domain/receipt"
	"github.com/encodergroup/portal-go/internal/domain/task"
	"github.com/encodergroup/portal-go/internal/domain/user"
)

// Memory counterparts of the database repositories. Like MemoryRequestRepo
// they return gorm.ErrRecordNotFound on misses.

type MemoryUserRepo struct {
	mu    sync.Mutex
	users []*user.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (repo *MemoryUserRepo) Create(u *user.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	repo.users = append(repo.users, &cp)
	return nil
}

func (repo *MemoryUserRepo) GetByID(id string) (*user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, u := range repo.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (repo *MemoryUserRepo) GetByEmail(email string) (*user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, u := range repo.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (repo *MemoryUserRepo) List(skip, limit int) ([]user.User, int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	total := int64(len(repo.users))
	if skip >= len(repo.users) {
		return []user.User{}, total, nil
	}
	end := len(repo.users)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	page := make([]user.User, 0, end-skip)
	for _, u := range repo.users[skip:end] {
		page = append(page, *u)
	}
	return page, total, nil
}

func (repo *MemoryUserRepo) Update(u *user.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, existing := range repo.users {
		if existing.ID == u.ID {
			cp := *u
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			repo.users[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type MemoryMeetingRepo struct {
	mu       sync.Mutex
	meetings []*meeting.Meeting
}

func NewMemoryMeetingRepo() *MemoryMeetingRepo {
	return &MemoryMeetingRepo{}
}

func (repo *MemoryMeetingRepo) Create(m *meeting.Meeting) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	cp := *m
	repo.meetings = append(repo.meetings, &cp)
	return nil
}

func (repo *MemoryMeetingRepo) GetByID(id string) (*meeting.Meeting, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, m := range repo.meetings {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (repo *MemoryMeetingRepo) ListUpcoming(userID string, from time.Time) ([]meeting.Meeting, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var out []meeting.Meeting
	for _, m := range repo.meetings {
		if m.Canceled || m.StartsAt.Before(from) {
			continue
		}
		if m.OrganizerID == userID || attendeesContain(m, userID) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func attendeesContain(m *meeting.Meeting, userID string) bool {
	for _, a := range m.ToView().Attendees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func (repo *MemoryMeetingRepo) ListByRequest(requestID string) ([]meeting.Meeting, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var out []meeting.Meeting
	for _, m := range repo.meetings {
		if m.RequestID == requestID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (repo *MemoryMeetingRepo) Update(m *meeting.Meeting) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, existing := range repo.meetings {
		if existing.ID == m.ID {
			cp := *m
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			repo.meetings[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type MemoryTaskRepo struct {
	mu    sync.Mutex
	tasks []*task.Task
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{}
}

func (repo *MemoryTaskRepo) columnTasks(requestID string, column task.Column) []*task.Task {
	var out []*task.Task
	for _, t := range repo.tasks {
		if t.RequestID == requestID && t.Column == column {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (repo *MemoryTaskRepo) Create(t *task.Task) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Position = len(repo.columnTasks(t.RequestID, t.Column))
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	repo.tasks = append(repo.tasks, &cp)
	return nil
}

func (repo *MemoryTaskRepo) GetByID(id string) (*task.Task, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, t := range repo.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (repo *MemoryTaskRepo) ListByRequest(requestID string) ([]task.Task, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var out []task.Task
	for _, t := range repo.tasks {
		if t.RequestID == requestID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (repo *MemoryTaskRepo) Update(t *task.Task) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, existing := range repo.tasks {
		if existing.ID == t.ID {
			cp := *t
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			repo.tasks[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (repo *MemoryTaskRepo) Delete(id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, t := range repo.tasks {
		if t.ID == id {
			repo.tasks = append(repo.tasks[:i], repo.tasks[i+1:]...)
			repo.reindex(t.RequestID, t.Column)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (repo *MemoryTaskRepo) reindex(requestID string, column task.Column) {
	for i, t := range repo.columnTasks(requestID, column) {
		t.Position = i
	}
}

func (repo *MemoryTaskRepo) Move(id string, column task.Column, position int) (*task.Task, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var moved *task.Task
	for _, t := range repo.tasks {
		if t.ID == id {
			moved = t
			break
		}
	}
	if moved == nil {
		return nil, gorm.ErrRecordNotFound
	}

	source := moved.Column
	target := repo.columnTasks(moved.RequestID, column)
	max := len(target)
	if source == column {
		max = len(target) - 1
	}
	if position < 0 {
		position = 0
	}
	if position > max {
		position = max
	}

	moved.Column = column
	moved.Position = position
	moved.UpdatedAt = time.Now()

	// Rebuild dense positions in both columns, slotting the moved task in.
	repo.reorder(moved, source)
	repo.reorder(moved, column)

	cp := *moved
	return &cp, nil
}

func (repo *MemoryTaskRepo) reorder(moved *task.Task, column task.Column) {
	var rest []*task.Task
	for _, t := range repo.columnTasks(moved.RequestID, column) {
		if t.ID != moved.ID {
			rest = append(rest, t)
		}
	}
	i := 0
	for _, t := range rest {
		if moved.Column == column && i == moved.Position {
			i++
		}
		t.Position = i
		i++
	}
}

type MemoryNotificationRepo struct {
	mu            sync.Mutex
	notifications []*notification.Notification
}

func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{}
}

func (repo *MemoryNotificationRepo) Create(n *notification.Notification) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	cp := *n
	repo.notifications = append(repo.notifications, &cp)
	return nil
}

func (repo *MemoryNotificationRepo) ListByUser(userID string, unreadOnly bool, skip, limit int) ([]notification.Notification, int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*notification.Notification
	for _, n := range repo.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		matched = append(matched, n)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if skip >= len(matched) {
		return []notification.Notification{}, total, nil
	}
	matched = matched[skip:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	page := make([]notification.Notification, 0, len(matched))
	for _, n := range matched {
		page = append(page, *n)
	}
	return page, total, nil
}

func (repo *MemoryNotificationRepo) MarkRead(id, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, n := range repo.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (repo *MemoryNotificationRepo) MarkAllRead(userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, n := range repo.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

type MemoryReceiptRepo struct {
	mu       sync.Mutex
	receipts []*receipt.Receipt
}

func NewMemoryReceiptRepo() *MemoryReceiptRepo {
	return &MemoryReceiptRepo{}
}

func (repo *MemoryReceiptRepo) Create(r *receipt.Receipt) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	cp := *r
	repo.receipts = append(repo.receipts, &cp)
	return nil
}

func (repo *MemoryReceiptRepo) GetByID(id string) (*receipt.Receipt, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, r := range repo.receipts {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (repo *MemoryReceiptRepo) ListByUser(userID string) ([]receipt.Receipt, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var out []receipt.Receipt
	for _, r := range repo.receipts {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (repo *MemoryReceiptRepo) Update(r *receipt.Receipt) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, existing := range repo.receipts {
		if existing.ID == r.ID {
			cp := *r
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			repo.receipts[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (repo *MemoryReceiptRepo) Delete(id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, r := range repo.receipts {
		if r.ID == id {
			repo.receipts = append(repo.receipts[:i], repo.receipts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (repo *MemoryReceiptRepo) StatsByUser(userID string) (*receipt.Stats, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var stats receipt.Stats
	for _, r := range repo.receipts {
		if r.UserID != userID {
			continue
		}
		stats.TotalReceipts++
		switch r.Status {
		case receipt.StatusInReview:
			stats.EnRevision++
		case receipt.StatusAccepted:
			stats.Aceptadas++
			stats.TotalAmount += r.TotalAmount
		case receipt.StatusRejected:
			stats.Rechazadas++
		}
	}
	return &stats, nil
}

type MemoryAuditRepo struct {
	mu      sync.Mutex
	entries []*audit.Entry
}

func NewMemoryAuditRepo() *MemoryAuditRepo {
	return &MemoryAuditRepo{}
}

func (repo *MemoryAuditRepo) Create(e *audit.Entry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now()
	cp := *e
	repo.entries = append(repo.entries, &cp)
	return nil
}

func (repo *MemoryAuditRepo) List(skip, limit int) ([]audit.Entry, int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	total := int64(len(repo.entries))
	ordered := make([]*audit.Entry, len(repo.entries))
	copy(ordered, repo.entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	if skip >= len(ordered) {
		return []audit.Entry{}, total, nil
	}
	ordered = ordered[skip:]
	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	page := make([]audit.Entry, 0, len(ordered))
	for _, e := range ordered {
		page = append(page, *e)
	}
	return page, total, nil
}
