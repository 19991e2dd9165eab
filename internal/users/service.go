package users

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
)

// Service owns user-administration rules. The route middleware has already
// required the manage_users grant; the service still scopes every operation
// to the caller's own tenant group.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the caller's tenant accounts.
func (s *Service) List(ctx context.Context, sess authz.Session) ([]User, error) {
	return s.repo.List(ctx, sess.GroupID)
}

// Create provisions an account inside the caller's group. The role is fixed
// here at provisioning time; a later change takes effect on the subject's
// next request, since sessions re-materialize identity per request.
func (s *Service) Create(ctx context.Context, sess authz.Session, req CreateUserRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := User{
		GroupID:   sess.GroupID,
		CompanyID: req.CompanyID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      string(authz.ParseRole(req.Role)),
		IsActive:  true,
	}
	id, err := s.repo.Create(ctx, u, string(hash))
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Deactivate disables an account after the scope check passes.
func (s *Service) Deactivate(ctx context.Context, sess authz.Session, id int64) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckScope(sess, u.GroupID); err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}
