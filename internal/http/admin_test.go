package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cloudmlm/go-sitecms/internal/auth"
	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/blog"
	backfillcmd "github.com/cloudmlm/go-sitecms/internal/commands/backfill"
	blogcmd "github.com/cloudmlm/go-sitecms/internal/commands/blog"
	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/internal/locales"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

const testToken = "s3cret"

type prefixTranslator struct{}

func (prefixTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	return "[" + target + "] " + text, nil
}

type testServices struct {
	content content.Service
	repo    content.Repository
	audit   *jobs.InMemoryAuditRecorder
}

func setupAdminAPI(t *testing.T) (*http.ServeMux, testServices) {
	t.Helper()

	resolver := locales.MustNew([]string{"en", "es", "de"}, "en")
	repo := content.NewMemoryRepository()
	contentSvc := content.NewService(repo, resolver)
	audit := jobs.NewInMemoryAuditRecorder()

	job := backfill.NewJob(repo, prefixTranslator{}, resolver, backfill.WithAuditRecorder(audit))
	importer := blog.NewImporter(repo, resolver, blog.WithAuditRecorder(audit))
	markdownFS := fstest.MapFS{
		"posts/launch.md": {Data: []byte("---\ntitle: Launch Notes\nslug: launch-notes\n---\nWe shipped.\n")},
	}

	api := NewAdminAPI(resolver,
		WithSessionValidator(auth.NewTokenValidator(testToken)),
		WithContentService(contentSvc),
		WithPageTitleService(pagetitles.NewService(pagetitles.NewMemoryRepository(), resolver)),
		WithLayoutService(overrides.NewService(overrides.NewMemoryRepository(), overrides.SiteDefaults(), resolver)),
		WithBackfillHandler(backfillcmd.NewRunHandler(job, nil)),
		WithBlogImportHandlers(
			blogcmd.NewImportWordPressHandler(importer, nil),
			blogcmd.NewImportMarkdownHandler(importer, func(string) fs.FS { return markdownFS }, nil),
			"content/blog",
		),
		WithAuditRecorder(audit),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux, testServices{content: contentSvc, repo: repo, audit: audit}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, mux, method, path, testToken, body, wantStatus)
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, token string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch value := body.(type) {
	case nil:
	case string:
		buf.WriteString(value)
	default:
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAdminAPIRejectsMissingSession(t *testing.T) {
	t.Parallel()

	mux, _ := setupAdminAPI(t)
	paths := []struct{ method, path string }{
		{http.MethodGet, "/admin/api/content"},
		{http.MethodPost, "/admin/api/content"},
		{http.MethodGet, "/admin/api/page-titles"},
		{http.MethodPut, "/admin/api/settings/layout/en"},
		{http.MethodPost, "/admin/api/translations/service/backfill"},
		{http.MethodPost, "/admin/api/blog/import"},
		{http.MethodGet, "/admin/api/jobs/audit"},
	}
	for _, tc := range paths {
		rec := doRequest(t, mux, tc.method, tc.path, "", nil, http.StatusUnauthorized)
		var resp errorResponse
		decodeJSONBody(t, rec, &resp)
		if resp.Error != "unauthorized" {
			t.Fatalf("%s %s: expected unauthorized error, got %+v", tc.method, tc.path, resp)
		}
	}

	doRequest(t, mux, http.MethodGet, "/admin/api/content", "wrong", nil, http.StatusUnauthorized)
}

func TestAdminAPIWithoutValidatorRejectsEverything(t *testing.T) {
	t.Parallel()

	api := NewAdminAPI(locales.MustNew([]string{"en"}, "en"),
		WithContentService(content.NewService(content.NewMemoryRepository(), locales.MustNew([]string{"en"}, "en"))))
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}
	doRequest(t, mux, http.MethodGet, "/admin/api/content", testToken, nil, http.StatusUnauthorized)
}

func TestAdminAPIContentLifecycle(t *testing.T) {
	t.Parallel()

	mux, _ := setupAdminAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", map[string]any{
		"kind":              "service",
		"locale":            "en",
		"title":             "MLM Consulting",
		"description":       "Plan design reviews",
		"icon":              "briefcase",
		"show_on_home_page": true,
		"fields":            map[string]any{"badge": "Popular"},
	}, http.StatusCreated)
	var created content.Record
	decodeJSONBody(t, createResp, &created)
	if created.ID == uuid.Nil || created.GroupID == uuid.Nil {
		t.Fatalf("expected ids to be assigned, got %+v", created)
	}
	if created.Slug != "mlm-consulting" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", map[string]any{
		"group_id": created.GroupID,
		"kind":     "service",
		"locale":   "es",
		"title":    "Consultoría MLM",
	}, http.StatusCreated)

	conflict := doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", map[string]any{
		"group_id": created.GroupID,
		"kind":     "service",
		"locale":   "es",
		"title":    "Otra consultoría",
	}, http.StatusConflict)
	var conflictResp errorResponse
	decodeJSONBody(t, conflict, &conflictResp)
	if conflictResp.Error != "conflict" {
		t.Fatalf("expected conflict, got %+v", conflictResp)
	}

	itemPath := "/admin/api/content/" + created.ID.String()
	var translations []content.Record
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, itemPath+"/translations", nil, http.StatusOK), &translations)
	if len(translations) != 2 {
		t.Fatalf("expected 2 locale variants, got %d", len(translations))
	}

	var listed []content.Record
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, "/admin/api/content?kind=service&locale=es", nil, http.StatusOK), &listed)
	if len(listed) != 1 || listed[0].Locale != "es" {
		t.Fatalf("expected one es record, got %+v", listed)
	}
	if listed[0].Icon != "briefcase" || !listed[0].ShowOnHomePage {
		t.Fatalf("expected shared fields copied from default row, got %+v", listed[0])
	}

	var updated content.Record
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPut, itemPath, map[string]any{
		"title":             "MLM Consulting Services",
		"icon":              "compass",
		"show_on_home_page": true,
	}, http.StatusOK), &updated)
	if updated.Title != "MLM Consulting Services" || updated.Icon != "compass" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, "/admin/api/content?kind=service&locale=es", nil, http.StatusOK), &listed)
	if listed[0].Icon != "compass" {
		t.Fatalf("expected icon propagated to siblings, got %q", listed[0].Icon)
	}

	doJSONRequest(t, mux, http.MethodDelete, itemPath, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, itemPath, nil, http.StatusNotFound)

	var deleted groupDeleteResponse
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodDelete, "/admin/api/content/groups/"+created.GroupID.String(), nil, http.StatusOK), &deleted)
	if deleted.Deleted != 1 {
		t.Fatalf("expected remaining sibling deleted, got %+v", deleted)
	}
}

func TestAdminAPIContentValidationIssues(t *testing.T) {
	t.Parallel()

	mux, _ := setupAdminAPI(t)

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", map[string]any{
		"kind":   "service",
		"locale": "fr",
	}, http.StatusBadRequest)
	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if resp.Error != "validation_failed" {
		t.Fatalf("expected validation_failed, got %+v", resp)
	}
	fields := map[string]bool{}
	for _, item := range resp.Issues {
		fields[item.Field] = true
	}
	if !fields["locale"] || !fields["title"] {
		t.Fatalf("expected locale and title issues, got %+v", resp.Issues)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", nil, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", "{not json", http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/content?kind=menus", nil, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/content/not-a-uuid", nil, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/content", map[string]any{
		"group_id": uuid.New(),
		"kind":     "plan",
		"locale":   "es",
		"title":    "Plan binario",
	}, http.StatusBadRequest)
}

func TestAdminAPIPageTitleCRUD(t *testing.T) {
	t.Parallel()

	mux, _ := setupAdminAPI(t)

	body := map[string]any{"page_key": "services/mlm-consulting", "locale": "es", "title": "Consultoría"}
	var created pagetitles.Override
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPost, "/admin/api/page-titles", body, http.StatusCreated), &created)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/page-titles", body, http.StatusConflict)

	path := "/admin/api/page-titles/" + created.ID.String()
	var updated pagetitles.Override
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPut, path, map[string]any{
		"page_key": "services/mlm-consulting",
		"locale":   "es",
		"badge":    "Nuevo",
	}, http.StatusOK), &updated)
	if updated.Badge != "Nuevo" || updated.Title != "" {
		t.Fatalf("expected update to replace fields, got %+v", updated)
	}

	var list []pagetitles.Override
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, "/admin/api/page-titles", nil, http.StatusOK), &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 override, got %d", len(list))
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/page-titles", map[string]any{"locale": "es"}, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodDelete, path, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, path, nil, http.StatusNotFound)
}

func TestAdminAPILayoutSettings(t *testing.T) {
	t.Parallel()

	mux, _ := setupAdminAPI(t)

	var initial layoutSettingsResponse
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, "/admin/api/settings/layout/es", nil, http.StatusOK), &initial)
	if initial.Stored.Locale != "es" || !initial.Stored.Overrides.IsEmpty() {
		t.Fatalf("expected empty stored overrides, got %+v", initial.Stored)
	}

	var saved layoutSettingsResponse
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPut, "/admin/api/settings/layout/es",
		`{"nav":[{"label":"Inicio"}]}`, http.StatusOK), &saved)
	if got := saved.Resolved.Nav[0].Label; got != "Inicio" {
		t.Fatalf("expected merged nav label, got %q", got)
	}
	if diff := cmp.Diff(initial.Resolved.Nav[1:], saved.Resolved.Nav[1:]); diff != "" {
		t.Fatalf("untouched nav items changed (-want +got):\n%s", diff)
	}

	rec := doJSONRequest(t, mux, http.MethodPut, "/admin/api/settings/layout/es",
		`{"nav":[{"kind":"dropdown"}]}`, http.StatusBadRequest)
	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if len(resp.Issues) == 0 || !strings.HasPrefix(resp.Issues[0].Field, "nav.0") {
		t.Fatalf("expected nav field issue, got %+v", resp.Issues)
	}

	doJSONRequest(t, mux, http.MethodPut, "/admin/api/settings/layout/fr", `{}`, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodPut, "/admin/api/settings/layout/es", nil, http.StatusBadRequest)

	var list []overrides.StoredOverrides
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, "/admin/api/settings/layout", nil, http.StatusOK), &list)
	if len(list) != 1 || list[0].Locale != "es" {
		t.Fatalf("expected stored es overrides, got %+v", list)
	}

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/settings/layout/es", nil, http.StatusNoContent)
}

func TestAdminAPIBackfillFillsMissingLocales(t *testing.T) {
	t.Parallel()

	mux, svc := setupAdminAPI(t)
	ctx := context.Background()
	if _, err := svc.content.Create(ctx, content.CreateRecordRequest{
		Kind: content.KindPlan, Locale: "en", Title: "Binary Plan", Description: "Two legs",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var report backfill.Report
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPost, "/admin/api/translations/plan/backfill", nil, http.StatusOK), &report)
	if report.Translated != 2 || report.Skipped != 0 || len(report.Errors) != 0 {
		t.Fatalf("unexpected first report %+v", report)
	}

	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPost, "/admin/api/translations/plan/backfill", nil, http.StatusOK), &report)
	if report.Translated != 0 || report.Skipped != 2 {
		t.Fatalf("expected second run to skip, got %+v", report)
	}

	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPost, "/admin/api/translations/plan/backfill?overwrite=true", nil, http.StatusOK), &report)
	if report.Translated != 2 {
		t.Fatalf("expected overwrite to translate again, got %+v", report)
	}

	records, err := svc.repo.List(ctx, content.KindPlan, "de")
	if err != nil || len(records) != 1 || records[0].Title != "[de] Binary Plan" {
		t.Fatalf("expected translated de record, got %+v (%v)", records, err)
	}

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/translations/menus/backfill", nil, http.StatusBadRequest)
	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if len(resp.Issues) == 0 || resp.Issues[0].Field != "kind" {
		t.Fatalf("expected kind issue, got %+v", resp)
	}

	var events []jobs.AuditEvent
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodGet, "/admin/api/jobs/audit?job="+backfill.JobName+"&limit=2", nil, http.StatusOK), &events)
	if len(events) != 2 {
		t.Fatalf("expected limit to apply, got %d events", len(events))
	}
}

func TestAdminAPIBlogImportMarkdown(t *testing.T) {
	t.Parallel()

	mux, svc := setupAdminAPI(t)

	var report blog.Report
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPost, "/admin/api/blog/import",
		map[string]any{"source": "markdown"}, http.StatusOK), &report)
	if report.Created != 1 || report.Source != blog.SourceMarkdown {
		t.Fatalf("unexpected report %+v", report)
	}

	posts, err := svc.repo.List(context.Background(), content.KindBlogPost, "en")
	if err != nil || len(posts) != 1 || posts[0].Slug != "launch-notes" {
		t.Fatalf("expected imported post, got %+v (%v)", posts, err)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/blog/import", map[string]any{"source": "rss"}, http.StatusBadRequest)

	var resp errorResponse
	decodeJSONBody(t, doJSONRequest(t, mux, http.MethodPost, "/admin/api/blog/import",
		map[string]any{"source": "wordpress"}, http.StatusBadRequest), &resp)
	if len(resp.Issues) != 1 || resp.Issues[0].Field != "source" {
		t.Fatalf("expected source issue when wordpress is not configured, got %+v", resp)
	}
}
