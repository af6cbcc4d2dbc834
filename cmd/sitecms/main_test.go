package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sitecms "github.com/cloudmlm/go-sitecms"
	"github.com/cloudmlm/go-sitecms/internal/di"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportBlogMarkdownDir(t *testing.T) {
	dir := t.TempDir()
	post := "---\ntitle: Compensation Plans Explained\nslug: compensation-plans\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "plans.md"), []byte(post), 0o600); err != nil {
		t.Fatalf("write post: %v", err)
	}

	out, err := runCLI(t, "import-blog", "--markdown-dir", dir)
	if err != nil {
		t.Fatalf("import-blog: %v (%s)", err, out)
	}
	var report sitecms.ImportReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v (%s)", err, out)
	}
	if report.Created != 1 || report.Source != "markdown" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestBackfillRequiresKind(t *testing.T) {
	if _, err := runCLI(t, "backfill"); err == nil || !strings.Contains(err.Error(), "kind") {
		t.Fatalf("expected missing kind error, got %v", err)
	}
}

func TestBackfillRunsAgainstEmptyStore(t *testing.T) {
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(cfg sitecms.Config, opts ...di.Option) (*sitecms.Module, error) {
		cfg.Logging.Level = "error"
		return sitecms.New(cfg, opts...)
	}

	out, err := runCLI(t, "backfill", "--kind", "industry-solution")
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	var report sitecms.BackfillReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v (%s)", err, out)
	}
	if report.Kind != "industry_solution" || report.Translated != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestResolveTitleReportsMissingPage(t *testing.T) {
	_, err := runCLI(t, "resolve-title", "--slug", "mlm-consulting", "--locale", "xx")
	if err == nil || !strings.Contains(err.Error(), `"en"`) {
		t.Fatalf("expected missing title error in default locale, got %v", err)
	}
}

func TestMigrateOnMemoryProvider(t *testing.T) {
	out, err := runCLI(t, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "schema up to date") {
		t.Fatalf("unexpected output %q", out)
	}
}
