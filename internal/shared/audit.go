package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
)

// AuditLog represents a record stored in audit_logs. Authorization denials
// and record mutations both land here; Outcome distinguishes them.
type AuditLog struct {
	ActorID  int64
	GroupID  int64
	Action   string
	Entity   string
	EntityID string
	Outcome  string
	Meta     map[string]any
	At       time.Time
}

// Audit outcomes.
const (
	AuditOutcomeOK           = "ok"
	AuditOutcomeDenied       = "denied"
	AuditOutcomeScopeDenied  = "scope_denied"
	AuditOutcomeUnauthorized = "unauthorized"
)

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Record persists the log entry.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" {
		return errors.New("audit log requires action/entity")
	}
	if log.Outcome == "" {
		log.Outcome = AuditOutcomeOK
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO audit_logs (actor_id, group_id, action, entity, entity_id, outcome, meta, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, '0001-01-01 00:00:00+00'::timestamptz), NOW()))`,
		log.ActorID, log.GroupID, log.Action, log.Entity, log.EntityID, log.Outcome, metaJSON, log.At)
	return err
}

// RecordDenial stores a coarse permission denial. Satisfies the authz
// middleware's DenialAuditor; write failures must not block the response.
func (l *AuditLogger) RecordDenial(ctx context.Context, sess authz.Session, resource authz.Resource, action authz.Action) {
	_ = l.Record(ctx, AuditLog{
		ActorID: sess.PrincipalID,
		GroupID: sess.GroupID,
		Action:  string(action),
		Entity:  string(authz.Normalize(resource)),
		Outcome: AuditOutcomeDenied,
	})
}

// Prune deletes audit rows older than the retention window and returns the
// number removed. Invoked by the background worker.
func (l *AuditLogger) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if l == nil {
		return 0, errors.New("audit logger not initialised")
	}
	tag, err := l.pool.Exec(ctx,
		`DELETE FROM audit_logs WHERE occurred_at < NOW() - $1::interval`,
		olderThan.String())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
