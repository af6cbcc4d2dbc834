package locales

import (
	"errors"
	"slices"
	"testing"
)

func TestResolveFallsBackToDefault(t *testing.T) {
	r := MustNew([]string{"en", "es", "fr"}, "en")

	cases := map[string]string{
		"xx":    "en",
		"es":    "es",
		" FR ":  "fr",
		"":      "en",
		"es-MX": "en",
	}
	for input, want := range cases {
		if got := r.Resolve(input); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNewValidatesInput(t *testing.T) {
	if _, err := New(nil, "en"); !errors.Is(err, ErrNoLocales) {
		t.Fatalf("expected ErrNoLocales, got %v", err)
	}
	if _, err := New([]string{"es"}, "en"); !errors.Is(err, ErrDefaultLocaleMissing) {
		t.Fatalf("expected ErrDefaultLocaleMissing, got %v", err)
	}
	if _, err := New([]string{"en", " "}, "en"); !errors.Is(err, ErrInvalidSupportedLocale) {
		t.Fatalf("expected ErrInvalidSupportedLocale, got %v", err)
	}
}

func TestSupportedAndNonDefault(t *testing.T) {
	r := MustNew([]string{"en", "es", "fr", "it", "de", "pt", "zh", "es"}, "en")
	if got := r.Supported(); len(got) != 7 {
		t.Fatalf("expected duplicates to be dropped, got %v", got)
	}
	nonDefault := r.NonDefault()
	if slices.Contains(nonDefault, "en") || len(nonDefault) != 6 {
		t.Fatalf("unexpected non-default locales %v", nonDefault)
	}
	nonDefault[0] = "mutated"
	if r.Supported()[1] != "es" {
		t.Fatal("expected Supported to return a copy")
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	r := MustNew([]string{"en", "es", "fr", "de", "zh"}, "en")

	cases := map[string]string{
		"es-MX,es;q=0.9,en;q=0.8": "es",
		"de-CH":                   "de",
		"zh-Hans-CN":              "zh",
		"ja-JP":                   "en",
		"":                        "en",
		"%%%":                     "en",
	}
	for header, want := range cases {
		if got := r.MatchAcceptLanguage(header); got != want {
			t.Fatalf("MatchAcceptLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestLocalizedPathAndSplit(t *testing.T) {
	r := MustNew([]string{"en", "es"}, "en")

	if got := r.LocalizedPath("es", "/pricing/"); got != "/es/pricing" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := r.LocalizedPath("xx", "services/mlm-consulting"); got != "/en/services/mlm-consulting" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := r.LocalizedPath("es", "/"); got != "/es" {
		t.Fatalf("unexpected root path %q", got)
	}

	locale, rest := r.SplitPath("/es/services/mlm-consulting")
	if locale != "es" || rest != "/services/mlm-consulting" {
		t.Fatalf("unexpected split %q %q", locale, rest)
	}
	locale, rest = r.SplitPath("/blog/hello")
	if locale != "en" || rest != "/blog/hello" {
		t.Fatalf("unexpected split without locale %q %q", locale, rest)
	}
}
