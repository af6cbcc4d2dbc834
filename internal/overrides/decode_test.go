package overrides

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestDecodeLayoutOverridesAcceptsValidPayload(t *testing.T) {
	t.Parallel()

	got, err := DecodeLayoutOverrides([]byte(`{
		"nav": [
			{"label": "Pricing", "href": "/new-pricing"},
			{"kind": "mega", "label": "Services", "mega": {"cards": [{"title": "Audit", "href": "/audit"}]}}
		],
		"footer_bottom_links": [{"title": "Imprint", "href": null}],
		"cta": {"label": "Start now"}
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Nav) != 2 || got.Nav[1].Kind != NavKindMega || got.Nav[1].Mega == nil {
		t.Fatalf("unexpected nav overrides: %+v", got.Nav)
	}
	if !got.FooterBottomLinks[0].Href.IsClear() {
		t.Fatalf("expected null href to decode as clear")
	}
	if got.CTA == nil || !got.CTA.Href.IsInherit() {
		t.Fatalf("expected cta href to inherit, got %+v", got.CTA)
	}
}

func TestDecodeLayoutOverridesReportsFieldIssues(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		payload string
		field   string
	}{
		"not json":          {payload: `{"nav": [`, field: "body"},
		"unknown kind":      {payload: `{"nav": [{"kind": "dropdown"}]}`, field: "nav.0.kind"},
		"mega without menu": {payload: `{"nav": [{"kind": "mega", "label": "Services"}]}`, field: "nav.0"},
		"link with mega":    {payload: `{"nav": [{"kind": "link", "mega": {}}]}`, field: "nav.0"},
		"unknown section":   {payload: `{"sidebar": []}`, field: "body"},
		"bad href type":     {payload: `{"cta": {"href": 42}}`, field: "cta.href"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeLayoutOverrides([]byte(tc.payload))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			issues, ok := goerrors.GetValidationErrors(err)
			if !ok || len(issues) == 0 {
				t.Fatalf("expected field issues, got %v", err)
			}
			found := false
			for _, issue := range issues {
				if issue.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected an issue on %q, got %+v", tc.field, issues)
			}
		})
	}
}
