package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/pkg/testsupport"
)

func recordSamples(t *testing.T, recorder jobs.AuditRecorder) {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	samples := []jobs.AuditEvent{
		{Job: "backfill", Subject: "service", Action: jobs.ActionCompleted, OccurredAt: base, Metadata: map[string]any{"translated": 6}},
		{Job: "blog_import", Subject: "wordpress", Action: jobs.ActionFailed, OccurredAt: base.Add(time.Minute)},
		{Job: "backfill", Subject: "plan", Action: jobs.ActionCompleted, OccurredAt: base.Add(2 * time.Minute)},
	}
	for _, event := range samples {
		if err := recorder.Record(context.Background(), event); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
}

func assertNewestBackfill(t *testing.T, recorder jobs.AuditRecorder) {
	t.Helper()
	events, err := recorder.List(context.Background(), "backfill", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].Subject != "plan" {
		t.Fatalf("expected newest backfill event for plan, got %+v", events)
	}

	all, err := recorder.List(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 || all[2].Subject != "service" {
		t.Fatalf("expected 3 events newest first, got %+v", all)
	}
}

func TestInMemoryAuditRecorder(t *testing.T) {
	t.Parallel()

	recorder := jobs.NewInMemoryAuditRecorder()
	recordSamples(t, recorder)
	assertNewestBackfill(t, recorder)

	recorder.Fail(errors.New("disk full"))
	if err := recorder.Record(context.Background(), jobs.AuditEvent{Job: "backfill"}); err == nil {
		t.Fatal("expected configured failure")
	}
	if got := len(recorder.Events()); got != 3 {
		t.Fatalf("expected failed record to be dropped, have %d events", got)
	}
}

func TestBunAuditRecorder(t *testing.T) {
	t.Parallel()

	db := testsupport.NewBunDB(t, (*jobs.AuditEventModel)(nil))
	recorder := jobs.NewBunAuditRecorder(db)
	recordSamples(t, recorder)
	assertNewestBackfill(t, recorder)

	events, err := recorder.List(context.Background(), "backfill", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got, ok := events[1].Metadata["translated"].(float64); !ok || got != 6 {
		t.Fatalf("expected metadata to round-trip, got %#v", events[1].Metadata)
	}
}
