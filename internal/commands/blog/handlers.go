package blogcmd

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/blog"
	"github.com/cloudmlm/go-sitecms/internal/commands"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	importWordPressOperation = "blog.import_wordpress"
	importMarkdownOperation  = "blog.import_markdown"
	defaultTimeout           = 10 * time.Minute
)

var (
	_ command.Commander[ImportWordPressCommand] = (*ImportWordPressHandler)(nil)
	_ command.Commander[ImportMarkdownCommand]  = (*ImportMarkdownHandler)(nil)
)

// Importer runs blog imports.
type Importer interface {
	ImportWordPress(ctx context.Context) (blog.Report, error)
	ImportMarkdown(ctx context.Context, fsys fs.FS) (blog.Report, error)
}

// DirFS opens a directory as a filesystem. Tests replace it with fstest.
type DirFS func(dir string) fs.FS

type ImportWordPressHandler struct {
	inner *commands.Handler[ImportWordPressCommand]
}

func NewImportWordPressHandler(importer Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportWordPressCommand]) *ImportWordPressHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ImportWordPressCommand) error {
		report, err := importer.ImportWordPress(ctx)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[ImportWordPressCommand]{
		commands.WithLogger[ImportWordPressCommand](logger),
		commands.WithOperation[ImportWordPressCommand](importWordPressOperation),
		commands.WithTimeout[ImportWordPressCommand](defaultTimeout),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportWordPressCommand](logger)),
	}
	return &ImportWordPressHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportWordPressCommand].
func (h *ImportWordPressHandler) Execute(ctx context.Context, msg ImportWordPressCommand) error {
	return h.inner.Execute(ctx, msg)
}

type ImportMarkdownHandler struct {
	inner *commands.Handler[ImportMarkdownCommand]
}

// NewImportMarkdownHandler builds the handler. A nil open uses os.DirFS.
func NewImportMarkdownHandler(importer Importer, open DirFS, logger interfaces.Logger, opts ...commands.HandlerOption[ImportMarkdownCommand]) *ImportMarkdownHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	if open == nil {
		open = os.DirFS
	}
	exec := func(ctx context.Context, msg ImportMarkdownCommand) error {
		report, err := importer.ImportMarkdown(ctx, open(msg.Directory))
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[ImportMarkdownCommand]{
		commands.WithLogger[ImportMarkdownCommand](logger),
		commands.WithOperation[ImportMarkdownCommand](importMarkdownOperation),
		commands.WithTimeout[ImportMarkdownCommand](defaultTimeout),
		commands.WithMessageFields(func(msg ImportMarkdownCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportMarkdownCommand](logger)),
	}
	return &ImportMarkdownHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportMarkdownCommand].
func (h *ImportMarkdownHandler) Execute(ctx context.Context, msg ImportMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}
