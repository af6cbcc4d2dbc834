package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/locales"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/cloudmlm/go-sitecms/internal/simulators"
	"github.com/cloudmlm/go-sitecms/internal/titles"
	"github.com/google/go-cmp/cmp"
)

type failingContent struct {
	content.Service
}

func (failingContent) List(context.Context, content.Kind, string) ([]*content.Record, error) {
	return nil, errors.New("database is down")
}

func setupPublicAPI(t *testing.T, contentSvc content.Service) *http.ServeMux {
	t.Helper()

	resolver := locales.MustNew([]string{"en", "es", "de"}, "en")
	layoutSvc := overrides.NewService(overrides.NewMemoryRepository(), overrides.SiteDefaults(), resolver)
	if _, err := layoutSvc.SaveOverrides(context.Background(), "de", []byte(`{"cta":{"label":"Jetzt starten"}}`)); err != nil {
		t.Fatalf("seed layout: %v", err)
	}
	pageTitles := pagetitles.NewService(pagetitles.NewMemoryRepository(), resolver)

	api := NewPublicAPI(resolver,
		WithPublicLayout(layoutSvc),
		WithPublicContent(contentSvc),
		WithPublicTitles(titles.NewResolver(contentSvc, pageTitles, resolver)),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux
}

func seededContent(t *testing.T) content.Service {
	t.Helper()
	resolver := locales.MustNew([]string{"en", "es", "de"}, "en")
	svc := content.NewService(content.NewMemoryRepository(), resolver)
	ctx := context.Background()
	en, err := svc.Create(ctx, content.CreateRecordRequest{
		Kind: content.KindService, Locale: "en", Title: "MLM Consulting Services", Icon: "briefcase",
	})
	if err != nil {
		t.Fatalf("seed en: %v", err)
	}
	if _, err := svc.Create(ctx, content.CreateRecordRequest{
		GroupID: en.GroupID, Kind: content.KindService, Locale: "es", Title: "Consultoría MLM",
	}); err != nil {
		t.Fatalf("seed es: %v", err)
	}
	return svc
}

func TestPublicAPILocaleResolution(t *testing.T) {
	t.Parallel()

	mux := setupPublicAPI(t, seededContent(t))

	cases := map[string]struct {
		path   string
		accept string
		want   string
	}{
		"supported tag":   {path: "/api/locale?tag=es", want: "es"},
		"unsupported tag": {path: "/api/locale?tag=fr", want: "en"},
		"accept language": {path: "/api/locale", accept: "de-CH,de;q=0.9,en;q=0.5", want: "de"},
		"no preference":   {path: "/api/locale", want: "en"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 got %d", rec.Code)
			}
			var resp localeResponse
			decodeJSONBody(t, rec, &resp)
			if resp.Locale != tc.want || resp.Default != "en" {
				t.Fatalf("expected locale %q, got %+v", tc.want, resp)
			}
		})
	}
}

func TestPublicAPILayoutFallsBackForUnsupportedLocale(t *testing.T) {
	t.Parallel()

	mux := setupPublicAPI(t, seededContent(t))

	var german, fallback, english overrides.Layout
	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/de/layout", "", nil, http.StatusOK), &german)
	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/fr/layout", "", nil, http.StatusOK), &fallback)
	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/en/layout", "", nil, http.StatusOK), &english)

	if german.CTA.Label != "Jetzt starten" {
		t.Fatalf("expected stored de cta, got %q", german.CTA.Label)
	}
	if diff := cmp.Diff(english, fallback); diff != "" {
		t.Fatalf("unsupported locale should render default layout (-en +fr):\n%s", diff)
	}
}

func TestPublicAPITitles(t *testing.T) {
	t.Parallel()

	mux := setupPublicAPI(t, seededContent(t))

	var resolved titles.ResolvedTitle
	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/es/titles/mlm-consulting", "", nil, http.StatusOK), &resolved)
	if resolved.Title != "Consultoría MLM" || resolved.Icon != "briefcase" || resolved.RecordLocale != "es" {
		t.Fatalf("unexpected resolved title %+v", resolved)
	}

	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/de/titles/mlm-consulting", "", nil, http.StatusOK), &resolved)
	if resolved.Title != "MLM Consulting Services" || resolved.RecordLocale != "en" {
		t.Fatalf("expected default-locale fallback, got %+v", resolved)
	}

	doRequest(t, mux, http.MethodGet, "/api/en/titles/unknown-page", "", nil, http.StatusNotFound)
}

func TestPublicAPIContentDegradesOnStoreFailure(t *testing.T) {
	t.Parallel()

	mux := setupPublicAPI(t, failingContent{})

	rec := doRequest(t, mux, http.MethodGet, "/api/es/content/service", "", nil, http.StatusOK)
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty list, got %q", got)
	}
	doRequest(t, mux, http.MethodGet, "/api/es/content/widgets", "", nil, http.StatusBadRequest)
}

func TestPublicAPIContentListsResolvedLocale(t *testing.T) {
	t.Parallel()

	mux := setupPublicAPI(t, seededContent(t))

	var records []content.Record
	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/es/content/service", "", nil, http.StatusOK), &records)
	if len(records) != 1 || records[0].Locale != "es" {
		t.Fatalf("expected es records, got %+v", records)
	}
}

func TestPublicAPISimulators(t *testing.T) {
	t.Parallel()

	mux := setupPublicAPI(t, seededContent(t))

	var stats simulators.GiftPlanStats
	decodeJSONBody(t, doRequest(t, mux, http.MethodPost, "/api/simulators/gift-plan", "",
		map[string]any{"gift_amount": 100, "gifts_received": 8, "admin_fee_percent": 10}, http.StatusOK), &stats)
	want := simulators.GiftPlanStats{Gross: 800, AdminFee: 80, Net: 720, Profit: 620, ROIPercent: 620}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("unexpected stats (-want +got):\n%s", diff)
	}

	doRequest(t, mux, http.MethodPost, "/api/simulators/binary-tree", "", nil, http.StatusNotFound)
	doRequest(t, mux, http.MethodPost, "/api/simulators/monoline", "", "{bad", http.StatusBadRequest)

	var names []string
	decodeJSONBody(t, doRequest(t, mux, http.MethodGet, "/api/simulators", "", nil, http.StatusOK), &names)
	if diff := cmp.Diff(simulators.Names(), names); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}
