package overrides

import (
	"encoding/json"
	"testing"
)

func TestFieldJSONStates(t *testing.T) {
	t.Parallel()

	var o NavOverride
	if err := json.Unmarshal([]byte(`{"label":"Blog","href":null}`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := o.Label.Get(); !ok || v != "Blog" {
		t.Fatalf("expected label value, got %v (%s)", v, o.Label.State())
	}
	if !o.Href.IsClear() {
		t.Fatalf("expected null href to clear, got %s", o.Href.State())
	}
	if !o.Order.IsInherit() {
		t.Fatalf("expected absent order to inherit, got %s", o.Order.State())
	}

	var blank FooterLinkOverride
	if err := json.Unmarshal([]byte(`{"title":""}`), &blank); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !blank.Title.IsInherit() {
		t.Fatalf("expected empty string to inherit, got %s", blank.Title.State())
	}
}

func TestFieldJSONOmitsInherit(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NavOverride{Label: Value("Home"), Href: Clear[string](), Order: Value(0)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(raw), `{"label":"Home","href":null,"order":0}`; got != want {
		t.Fatalf("marshal = %s, want %s", got, want)
	}
}
