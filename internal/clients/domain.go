package clients

import "time"

// Client is a customer record. GroupID is the owning tenant identifier, set
// once at creation from the creating principal's session and never
// reassigned.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	GroupID   int64     `json:"group_id" db:"group_id"`
	CompanyID int64     `json:"company_id" db:"company_id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	City      *string   `json:"city,omitempty" db:"city"`
	Country   string    `json:"country" db:"country"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedBy int64     `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateClientRequest struct {
	Code      string  `json:"code" validate:"required,max=50"`
	Name      string  `json:"name" validate:"required,max=200"`
	CompanyID int64   `json:"company_id" validate:"required,gt=0"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country   string  `json:"country" validate:"required,len=2"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country  *string `json:"country,omitempty" validate:"omitempty,len=2"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ListClientsRequest struct {
	GroupID   int64
	CompanyID *int64
	IsActive  *bool
	Limit     int
	Offset    int
}
