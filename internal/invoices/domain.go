package invoices

import "time"

// InvoiceStatus is the document lifecycle state.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusApproved  InvoiceStatus = "APPROVED"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a billing document. GroupID is the owning tenant identifier,
// stamped at creation and never reassigned.
type Invoice struct {
	ID          int64         `json:"id" db:"id"`
	GroupID     int64         `json:"group_id" db:"group_id"`
	CompanyID   int64         `json:"company_id" db:"company_id"`
	ClientID    int64         `json:"client_id" db:"client_id"`
	DocNumber   string        `json:"doc_number" db:"doc_number"`
	Status      InvoiceStatus `json:"status" db:"status"`
	Currency    string        `json:"currency" db:"currency"`
	TotalAmount float64       `json:"total_amount" db:"total_amount"`
	Notes       *string       `json:"notes,omitempty" db:"notes"`
	CreatedBy   int64         `json:"created_by" db:"created_by"`
	ApprovedBy  *int64        `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty" db:"approved_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateInvoiceRequest struct {
	ClientID    int64   `json:"client_id" validate:"required,gt=0"`
	CompanyID   int64   `json:"company_id" validate:"required,gt=0"`
	DocNumber   string  `json:"doc_number" validate:"required,max=50"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateInvoiceRequest struct {
	ClientID    *int64   `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	Currency    *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	TotalAmount *float64 `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	Notes       *string  `json:"notes,omitempty"`
}

type ListInvoicesRequest struct {
	GroupID   int64
	CompanyID *int64
	Status    *InvoiceStatus
	Limit     int
	Offset    int
}
