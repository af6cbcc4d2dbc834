package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AuditEventModel is the persisted form of AuditEvent.
type AuditEventModel struct {
	bun.BaseModel `bun:"table:job_audit_events,alias:jae"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	Job        string         `bun:"job,notnull"`
	Subject    string         `bun:"subject"`
	Action     string         `bun:"action,notnull"`
	OccurredAt time.Time      `bun:"occurred_at,notnull"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"`
}

// BunAuditRecorder stores audit events in SQL.
type BunAuditRecorder struct {
	db *bun.DB
}

func NewBunAuditRecorder(db *bun.DB) *BunAuditRecorder {
	return &BunAuditRecorder{db: db}
}

func (r *BunAuditRecorder) Record(ctx context.Context, event AuditEvent) error {
	event = prepare(event)
	model := &AuditEventModel{
		ID:         event.ID,
		Job:        event.Job,
		Subject:    event.Subject,
		Action:     event.Action,
		OccurredAt: event.OccurredAt,
		Metadata:   event.Metadata,
	}
	_, err := r.db.NewInsert().Model(model).Exec(ctx)
	return err
}

func (r *BunAuditRecorder) List(ctx context.Context, job string, limit int) ([]AuditEvent, error) {
	var models []AuditEventModel
	query := r.db.NewSelect().Model(&models).OrderExpr("occurred_at DESC")
	if job != "" {
		query = query.Where("job = ?", job)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	events := make([]AuditEvent, len(models))
	for i, model := range models {
		events[i] = AuditEvent{
			ID:         model.ID,
			Job:        model.Job,
			Subject:    model.Subject,
			Action:     model.Action,
			OccurredAt: model.OccurredAt.UTC(),
			Metadata:   model.Metadata,
		}
	}
	return events, nil
}
