package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAuditPrune removes audit rows past the retention window.
	TaskAuditPrune = "audit:prune"
	// TaskSessionsSweep removes expired session rows from postgres.
	TaskSessionsSweep = "sessions:sweep"
)

// AuditPrunePayload carries the retention window for an audit prune run.
type AuditPrunePayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewAuditPruneTask constructs the audit prune task.
func NewAuditPruneTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(AuditPrunePayload{RetentionHours: int(retention.Hours())})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPrune, data), nil
}

// NewSessionsSweepTask constructs the session sweep task.
func NewSessionsSweepTask() *asynq.Task {
	return asynq.NewTask(TaskSessionsSweep, nil)
}

// AuditPruneJob deletes audit rows past retention.
type AuditPruneJob struct {
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewAuditPruneJob constructs the job.
func NewAuditPruneJob(audit *shared.AuditLogger, logger *slog.Logger) *AuditPruneJob {
	return &AuditPruneJob{audit: audit, logger: logger}
}

// Handle processes TaskAuditPrune tasks.
func (j *AuditPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload AuditPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.RetentionHours <= 0 {
		return asynq.SkipRetry
	}
	removed, err := j.audit.Prune(ctx, time.Duration(payload.RetentionHours)*time.Hour)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("audit prune", slog.Int64("removed", removed))
	}
	return nil
}

// SessionStore is the slice of the auth repository the sweep job needs.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// SessionsSweepJob removes expired postgres session rows.
type SessionsSweepJob struct {
	store  SessionStore
	logger *slog.Logger
}

// NewSessionsSweepJob constructs the job.
func NewSessionsSweepJob(store SessionStore, logger *slog.Logger) *SessionsSweepJob {
	return &SessionsSweepJob{store: store, logger: logger}
}

// Handle processes TaskSessionsSweep tasks.
func (j *SessionsSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	removed, err := j.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("sessions sweep", slog.Int64("removed", removed))
	}
	return nil
}
