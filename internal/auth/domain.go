package auth

import "time"

// User is an account row joined with its role and tenant assignment.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	GroupID      int64
	CompanyID    int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
