package clients

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// Auditor records mutations and scope rejections. *shared.AuditLogger
// satisfies it; tests inject their own.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service owns client business rules. Coarse (resource, action) permission
// is enforced by the route middleware before any method here runs; the
// service enforces the fine-grained tenant scope on every record it touches,
// always after the fetch and before any mutation or response.
type Service struct {
	repo   Repository
	audit  Auditor
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, audit Auditor, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// Create inserts a client owned by the caller's group.
func (s *Service) Create(ctx context.Context, sess authz.Session, req CreateClientRequest) (*Client, error) {
	c := Client{
		GroupID:   sess.GroupID,
		CompanyID: req.CompanyID,
		Code:      req.Code,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		City:      req.City,
		Country:   req.Country,
		IsActive:  true,
		CreatedBy: sess.PrincipalID,
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, sess, "client.create", id, shared.AuditOutcomeOK)
	return s.repo.Get(ctx, id)
}

// Get fetches a single client, enforcing tenant scope after the fetch.
func (s *Service) Get(ctx context.Context, sess authz.Session, id int64) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckScope(sess, c.GroupID); err != nil {
		s.recordAudit(ctx, sess, "client.read", id, shared.AuditOutcomeScopeDenied)
		return nil, err
	}
	return c, nil
}

// List returns clients owned by the caller's group. Cross-tenant rows are
// excluded at the query level, so no per-row scope check is needed.
func (s *Service) List(ctx context.Context, sess authz.Session, req ListClientsRequest) ([]Client, error) {
	req.GroupID = sess.GroupID
	return s.repo.List(ctx, req)
}

// Update mutates a client after the scope check passes.
func (s *Service) Update(ctx context.Context, sess authz.Session, id int64, req UpdateClientRequest) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckScope(sess, c.GroupID); err != nil {
		s.recordAudit(ctx, sess, "client.update", id, shared.AuditOutcomeScopeDenied)
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.City != nil {
		c.City = req.City
	}
	if req.Country != nil {
		c.Country = *req.Country
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, *c); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, sess, "client.update", id, shared.AuditOutcomeOK)
	return s.repo.Get(ctx, id)
}

// Delete removes a client after the scope check passes.
func (s *Service) Delete(ctx context.Context, sess authz.Session, id int64) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CheckScope(sess, c.GroupID); err != nil {
		s.recordAudit(ctx, sess, "client.delete", id, shared.AuditOutcomeScopeDenied)
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, sess, "client.delete", id, shared.AuditOutcomeOK)
	return nil
}

// Export returns the caller's full client list for CSV download.
func (s *Service) Export(ctx context.Context, sess authz.Session) ([]Client, error) {
	return s.repo.List(ctx, ListClientsRequest{GroupID: sess.GroupID, Limit: 500})
}

func (s *Service) recordAudit(ctx context.Context, sess authz.Session, action string, id int64, outcome string) {
	if s.audit == nil {
		return
	}
	log := shared.AuditLog{
		ActorID:  sess.PrincipalID,
		GroupID:  sess.GroupID,
		Action:   action,
		Entity:   "client",
		EntityID: strconv.FormatInt(id, 10),
		Outcome:  outcome,
	}
	if err := s.audit.Record(ctx, log); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
