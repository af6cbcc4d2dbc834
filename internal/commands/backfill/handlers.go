package backfillcmd

import (
	"context"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/commands"
	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const runOperation = "backfill.run"

// DefaultTimeout leaves room for one vendor round trip per field across a
// full collection.
const DefaultTimeout = 15 * time.Minute

var _ command.Commander[RunBackfillCommand] = (*RunHandler)(nil)

// Runner executes backfills.
type Runner interface {
	Run(ctx context.Context, req backfill.Request) (backfill.Report, error)
}

// RunHandler executes RunBackfillCommand through the shared command handler.
type RunHandler struct {
	inner *commands.Handler[RunBackfillCommand]
}

func NewRunHandler(runner Runner, logger interfaces.Logger, opts ...commands.HandlerOption[RunBackfillCommand]) *RunHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RunBackfillCommand) error {
		kind, err := content.ParseKind(msg.Kind)
		if err != nil {
			return err
		}
		report, err := runner.Run(ctx, backfill.Request{Kind: kind, Overwrite: msg.Overwrite})
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunBackfillCommand]{
		commands.WithLogger[RunBackfillCommand](logger),
		commands.WithOperation[RunBackfillCommand](runOperation),
		commands.WithTimeout[RunBackfillCommand](DefaultTimeout),
		commands.WithMessageFields(func(msg RunBackfillCommand) map[string]any {
			return map[string]any{"kind": msg.Kind, "overwrite": msg.Overwrite}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RunBackfillCommand](logger)),
	}
	return &RunHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[RunBackfillCommand].
func (h *RunHandler) Execute(ctx context.Context, msg RunBackfillCommand) error {
	return h.inner.Execute(ctx, msg)
}
