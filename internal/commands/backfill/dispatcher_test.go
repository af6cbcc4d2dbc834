package backfillcmd_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/commands"
	backfillcmd "github.com/cloudmlm/go-sitecms/internal/commands/backfill"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// flakyRunner fails the first n runs, as a vendor outage would.
type flakyRunner struct {
	failures int
	calls    int
}

func (f *flakyRunner) Run(_ context.Context, req backfill.Request) (backfill.Report, error) {
	f.calls++
	if f.calls <= f.failures {
		return backfill.Report{}, errors.New("translation vendor timeout")
	}
	return backfill.Report{Kind: req.Kind, Translated: 3}, nil
}

func TestDispatchedBackfillRetriesAfterFailure(t *testing.T) {
	jobs := &flakyRunner{failures: 1}
	handler := backfillcmd.NewRunHandler(jobs, nil,
		commands.WithTimeout[backfillcmd.RunBackfillCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	var report backfill.Report
	err := dispatcher.Dispatch(context.Background(), backfillcmd.RunBackfillCommand{
		Kind:           "service",
		ResultCallback: func(r backfill.Report) { report = r },
	})
	if err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if jobs.calls != 2 || report.Translated != 3 {
		t.Fatalf("expected 2 runs and the second report, got calls=%d report=%+v", jobs.calls, report)
	}
}
