package sitecms_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	sitecms "github.com/cloudmlm/go-sitecms"
	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/di"
	goerrors "github.com/goliatone/go-errors"
)

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	return target + "/" + text, nil
}

func newModule(t *testing.T) *sitecms.Module {
	t.Helper()
	cfg := sitecms.DefaultConfig()
	cfg.Logging.Level = "error"
	cfg.I18N.Locales = []string{"en", "es"}
	module, err := sitecms.New(cfg, di.WithTranslator(echoTranslator{}))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := sitecms.DefaultConfig()
	cfg.DefaultLocale = "ja"
	if _, err := sitecms.New(cfg); !errors.Is(err, sitecms.ErrDefaultLocaleUnsupported) {
		t.Fatalf("expected ErrDefaultLocaleUnsupported, got %v", err)
	}
}

func TestModuleResolvesTitlesAfterBackfill(t *testing.T) {
	t.Parallel()

	module := newModule(t)
	ctx := context.Background()

	if _, err := module.Content().Create(ctx, content.CreateRecordRequest{
		Kind: content.KindService, Locale: "en", Title: "MLM Consulting", Icon: "briefcase",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	report, err := module.Backfill(ctx, "service", false)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if report.Translated != 1 {
		t.Fatalf("expected one translated row, got %+v", report)
	}

	title, err := module.ResolveTitle(ctx, "mlm-consulting", "es")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if title == nil || title.Title != "es/MLM Consulting" || title.Icon != "briefcase" {
		t.Fatalf("unexpected title %+v", title)
	}

	if got := module.ResolveLocale("pt-BR"); got != "en" {
		t.Fatalf("expected default locale for unsupported tag, got %q", got)
	}
}

func TestModuleBackfillRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := newModule(t).Backfill(context.Background(), "menus", false)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestModuleImportMarkdownFS(t *testing.T) {
	t.Parallel()

	module := newModule(t)
	report, err := module.ImportMarkdownFS(context.Background(), fstest.MapFS{
		"hello.md": {Data: []byte("---\ntitle: Hello World\n---\nBody\n")},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("expected one created post, got %+v", report)
	}
}
