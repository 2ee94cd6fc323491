package request

import "time"

type CreateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	ServiceType string   `json:"serviceType"`
	Budget      string   `json:"budget"`
	Deadline    string   `json:"deadline"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`

	// Draft keeps the request at the draft stage instead of submitting it
	// right away.
	Draft bool `json:"draft"`
}

type UpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ServiceType *string   `json:"serviceType"`
	Budget      *string   `json:"budget"`
	Deadline    *string   `json:"deadline"`
	Priority    *string   `json:"priority"`
	Tags        *[]string `json:"tags"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type StatusChangeView struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentView struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type AttachmentView struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is the list item view, children replaced by counts.
type Summary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ServiceType   string    `json:"serviceType,omitempty"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	StatusColor   string    `json:"statusColor"`
	Tags          []string  `json:"tags,omitempty"`
	ClientID      string    `json:"clientId"`
	AssignedTo    string    `json:"assignedTo,omitempty"`
	CommentsCount int       `json:"commentsCount"`
	FilesCount    int       `json:"filesCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Detail struct {
	Summary
	Description   string             `json:"description"`
	Budget        string             `json:"budget,omitempty"`
	Deadline      string             `json:"deadline,omitempty"`
	StatusHistory []StatusChangeView `json:"statusHistory"`
	Comments      []CommentView      `json:"comments"`
	Attachments   []AttachmentView   `json:"attachments"`
}

type SingleEnvelope struct {
	Success bool   `json:"success"`
	Request Detail `json:"request"`
}

type ListEnvelope struct {
	Success  bool      `json:"success"`
	Requests []Summary `json:"requests"`
	Total    int64     `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type StatusInfo struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

func (r *Request) ToSummary() Summary {
	return Summary{
		ID:            r.ID,
		Title:         r.Title,
		ServiceType:   r.ServiceType,
		Priority:      r.Priority,
		Status:        string(r.Status),
		StatusLabel:   r.Status.Label(),
		StatusColor:   r.Status.Color(),
		Tags:          r.Tags,
		ClientID:      r.ClientID,
		AssignedTo:    r.AssignedTo,
		CommentsCount: len(r.Comments),
		FilesCount:    len(r.Attachments),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *Request) ToDetail() Detail {
	d := Detail{
		Summary:       r.ToSummary(),
		Description:   r.Description,
		Budget:        r.Budget,
		Deadline:      r.Deadline,
		StatusHistory: make([]StatusChangeView, 0, len(r.StatusHistory)),
		Comments:      make([]CommentView, 0, len(r.Comments)),
		Attachments:   make([]AttachmentView, 0, len(r.Attachments)),
	}
	for _, sc := range r.StatusHistory {
		d.StatusHistory = append(d.StatusHistory, StatusChangeView{
			ID:        sc.ID,
			From:      string(sc.From),
			To:        string(sc.To),
			Reason:    sc.Reason,
			ActorID:   sc.ActorID,
			CreatedAt: sc.CreatedAt,
		})
	}
	for _, cm := range r.Comments {
		d.Comments = append(d.Comments, CommentView{
			ID:        cm.ID,
			AuthorID:  cm.AuthorID,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		})
	}
	for _, at := range r.Attachments {
		d.Attachments = append(d.Attachments, AttachmentView{
			ID:        at.ID,
			FileName:  at.FileName,
			Size:      at.Size,
			CreatedAt: at.CreatedAt,
		})
	}
	return d
}
