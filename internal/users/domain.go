package users

import "time"

// User is an account visible to user administration. PasswordHash never
// leaves the service layer.
type User struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	CompanyID int64     `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name" validate:"required,max=200"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=admin manager stock accountant viewer"`
	CompanyID int64  `json:"company_id" validate:"required,gt=0"`
}
