package invoices

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// ErrInvalidStatus indicates an illegal document status transition.
var ErrInvalidStatus = errors.New("invoices: invalid status transition")

// Auditor records mutations and scope rejections.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service owns invoice business rules. Route middleware enforces the coarse
// matrix check; every record operation here runs the tenant-scope guard
// after fetch and before mutation.
type Service struct {
	repo   Repository
	audit  Auditor
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, audit Auditor, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// Create inserts a draft invoice owned by the caller's group.
func (s *Service) Create(ctx context.Context, sess authz.Session, req CreateInvoiceRequest) (*Invoice, error) {
	inv := Invoice{
		GroupID:     sess.GroupID,
		CompanyID:   req.CompanyID,
		ClientID:    req.ClientID,
		DocNumber:   req.DocNumber,
		Status:      StatusDraft,
		Currency:    req.Currency,
		TotalAmount: req.TotalAmount,
		Notes:       req.Notes,
		CreatedBy:   sess.PrincipalID,
	}
	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, sess, "invoice.create", id, shared.AuditOutcomeOK)
	return s.repo.Get(ctx, id)
}

// Get fetches a single invoice, enforcing tenant scope after the fetch.
func (s *Service) Get(ctx context.Context, sess authz.Session, id int64) (*Invoice, error) {
	inv, err := s.fetchScoped(ctx, sess, id, "invoice.read")
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns invoices owned by the caller's group.
func (s *Service) List(ctx context.Context, sess authz.Session, req ListInvoicesRequest) ([]Invoice, error) {
	req.GroupID = sess.GroupID
	return s.repo.List(ctx, req)
}

// Update mutates a draft invoice. Approved and cancelled documents are
// frozen.
func (s *Service) Update(ctx context.Context, sess authz.Session, id int64, req UpdateInvoiceRequest) (*Invoice, error) {
	inv, err := s.fetchScoped(ctx, sess, id, "invoice.update")
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, ErrInvalidStatus
	}

	if req.ClientID != nil {
		inv.ClientID = *req.ClientID
	}
	if req.Currency != nil {
		inv.Currency = *req.Currency
	}
	if req.TotalAmount != nil {
		inv.TotalAmount = *req.TotalAmount
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, *inv); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, sess, "invoice.update", id, shared.AuditOutcomeOK)
	return s.repo.Get(ctx, id)
}

// Approve transitions a draft invoice to approved, stamping the approver.
func (s *Service) Approve(ctx context.Context, sess authz.Session, id int64) (*Invoice, error) {
	inv, err := s.fetchScoped(ctx, sess, id, "invoice.approve")
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	inv.Status = StatusApproved
	inv.ApprovedBy = &sess.PrincipalID
	inv.ApprovedAt = &now

	if err := s.repo.Update(ctx, *inv); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, sess, "invoice.approve", id, shared.AuditOutcomeOK)
	return s.repo.Get(ctx, id)
}

// Export returns the caller's invoices for CSV download.
func (s *Service) Export(ctx context.Context, sess authz.Session) ([]Invoice, error) {
	return s.repo.List(ctx, ListInvoicesRequest{GroupID: sess.GroupID, Limit: 500})
}

// fetchScoped loads a record and applies the tenant-scope guard. The
// not-found outcome fires before scope is ever evaluated.
func (s *Service) fetchScoped(ctx context.Context, sess authz.Session, id int64, action string) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckScope(sess, inv.GroupID); err != nil {
		s.recordAudit(ctx, sess, action, id, shared.AuditOutcomeScopeDenied)
		return nil, err
	}
	return inv, nil
}

func (s *Service) recordAudit(ctx context.Context, sess authz.Session, action string, id int64, outcome string) {
	if s.audit == nil {
		return
	}
	log := shared.AuditLog{
		ActorID:  sess.PrincipalID,
		GroupID:  sess.GroupID,
		Action:   action,
		Entity:   "invoice",
		EntityID: strconv.FormatInt(id, 10),
		Outcome:  outcome,
	}
	if err := s.audit.Record(ctx, log); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
