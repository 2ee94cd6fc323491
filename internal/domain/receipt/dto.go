package receipt

import "time"

// CreateRequest carries the multipart form fields; the image travels
// separately as a file part.
type CreateRequest struct {
	CompanyName string
	FolioNumber string
	Date        time.Time
	Description string
	TotalAmount float64
}

type UpdateRequest struct {
	CompanyName *string
	FolioNumber *string
	Date        *time.Time
	Description *string
	TotalAmount *float64
}

type View struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	CompanyName string    `json:"companyName"`
	FolioNumber string    `json:"folioNumber"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *Receipt) ToView() View {
	v := View{
		ID:          r.ID,
		UserID:      r.UserID,
		CompanyName: r.CompanyName,
		FolioNumber: r.FolioNumber,
		Date:        r.Date,
		Description: r.Description,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ImageKey != "" {
		v.ImageURL = "/api/v1/receipts/" + r.ID + "/image"
	}
	return v
}

// Stats aggregates one user's receipts; TotalAmount only counts accepted
// receipts.
type Stats struct {
	TotalReceipts int64   `json:"totalReceipts"`
	EnRevision    int64   `json:"enRevision"`
	Aceptadas     int64   `json:"aceptadas"`
	Rechazadas    int64   `json:"rechazadas"`
	TotalAmount   float64 `json:"totalAmount"`
}
