package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials. Unknown email, wrong
// password and disabled accounts are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Identity maps an authenticated user onto the principal context the
// authorization core consumes. This is the only place the four fields are
// assembled.
func (s *Service) Identity(user *User) authz.Session {
	if user == nil {
		return authz.Session{}
	}
	return authz.Session{
		PrincipalID: user.ID,
		Role:        authz.ParseRole(user.Role),
		GroupID:     user.GroupID,
		CompanyID:   user.CompanyID,
	}
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
