// Package sitecms is the entry point for the marketing site content
// backend: locale resolution, layout overrides, page titles, translation
// backfills and blog imports over a shared content store.
package sitecms

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/blog"
	backfillcmd "github.com/cloudmlm/go-sitecms/internal/commands/backfill"
	blogcmd "github.com/cloudmlm/go-sitecms/internal/commands/blog"
	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/di"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/cloudmlm/go-sitecms/internal/titles"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

// ContentService exports the admin content service contract.
type ContentService = content.Service

// LayoutService exports the layout override service contract.
type LayoutService = overrides.Service

// PageTitleService exports the page title override service contract.
type PageTitleService = pagetitles.Service

type (
	ResolvedTitle  = titles.ResolvedTitle
	Layout         = overrides.Layout
	BackfillReport = backfill.Report
	ImportReport   = blog.Report
)

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

func (m *Module) Logger(name string) interfaces.Logger {
	return m.container.LoggerProvider().GetLogger(name)
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

func (m *Module) Layout() LayoutService {
	return m.container.LayoutService()
}

func (m *Module) PageTitles() PageTitleService {
	return m.container.PageTitleService()
}

// ResolveLocale maps a requested tag onto a supported locale.
func (m *Module) ResolveLocale(tag string) string {
	return m.container.Locales().Resolve(tag)
}

// ResolveTitle returns the hero copy for a service or plan page, or nil.
func (m *Module) ResolveTitle(ctx context.Context, slug, locale string) (*ResolvedTitle, error) {
	return m.container.TitleResolver().Resolve(ctx, slug, locale)
}

// ResolveLayout returns the merged site chrome for locale.
func (m *Module) ResolveLayout(ctx context.Context, locale string) Layout {
	return m.container.LayoutService().ResolveLayout(ctx, locale)
}

// Backfill translates kind into the missing locales through the command
// handler, so CLI and HTTP runs share validation and logging.
func (m *Module) Backfill(ctx context.Context, kind string, overwrite bool) (BackfillReport, error) {
	var report BackfillReport
	err := m.container.BackfillHandler().Execute(ctx, backfillcmd.RunBackfillCommand{
		Kind:           kind,
		Overwrite:      overwrite,
		ResultCallback: func(r backfill.Report) { report = r },
	})
	return report, err
}

// ImportWordPress imports every post from the configured WordPress site.
func (m *Module) ImportWordPress(ctx context.Context) (ImportReport, error) {
	var report ImportReport
	err := m.container.WordPressImportHandler().Execute(ctx, blogcmd.ImportWordPressCommand{
		ResultCallback: func(r blog.Report) { report = r },
	})
	return report, err
}

// ImportMarkdown imports the markdown posts under dir.
func (m *Module) ImportMarkdown(ctx context.Context, dir string) (ImportReport, error) {
	var report ImportReport
	err := m.container.MarkdownImportHandler().Execute(ctx, blogcmd.ImportMarkdownCommand{
		Directory:      dir,
		ResultCallback: func(r blog.Report) { report = r },
	})
	return report, err
}

// ImportMarkdownFS imports markdown posts from an arbitrary filesystem.
func (m *Module) ImportMarkdownFS(ctx context.Context, fsys fs.FS) (ImportReport, error) {
	return m.container.Importer().ImportMarkdown(ctx, fsys)
}

// Handler returns a mux serving the admin and public APIs.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.RegisterHTTP(mux); err != nil {
		return nil, err
	}
	return mux, nil
}
