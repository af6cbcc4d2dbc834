// Package jobs records the outcome of offline batch runs (translation
// backfills and blog imports).
package jobs

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action names recorded by batch jobs.
const (
	ActionCompleted = "completed"
	ActionFailed    = "failed"
)

// AuditEvent captures one batch run.
type AuditEvent struct {
	ID         uuid.UUID      `json:"id"`
	Job        string         `json:"job"`
	Subject    string         `json:"subject"`
	Action     string         `json:"action"`
	OccurredAt time.Time      `json:"occurred_at"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// AuditRecorder persists audit events. List returns the most recent events
// first, at most limit of them when limit is positive.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
	List(ctx context.Context, job string, limit int) ([]AuditEvent, error)
}

// InMemoryAuditRecorder keeps events in process memory.
type InMemoryAuditRecorder struct {
	mu     sync.Mutex
	events []AuditEvent
	err    error
}

func NewInMemoryAuditRecorder() *InMemoryAuditRecorder {
	return &InMemoryAuditRecorder{}
}

func (r *InMemoryAuditRecorder) Record(_ context.Context, event AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	event = prepare(event)
	event.Metadata = maps.Clone(event.Metadata)
	r.events = append(r.events, event)
	return nil
}

// Fail makes subsequent Record calls return err.
func (r *InMemoryAuditRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *InMemoryAuditRecorder) List(_ context.Context, job string, limit int) ([]AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AuditEvent, 0, len(r.events))
	for _, event := range slices.Backward(r.events) {
		if job != "" && event.Job != job {
			continue
		}
		out = append(out, event)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Events returns every recorded event in insertion order.
func (r *InMemoryAuditRecorder) Events() []AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func prepare(event AuditEvent) AuditEvent {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	event.OccurredAt = event.OccurredAt.UTC()
	return event
}
