package di

import (
	"testing"

	"github.com/cloudmlm/go-sitecms/internal/locales"
	"github.com/google/go-cmp/cmp"
)

func TestSourceLocalesExcludeSource(t *testing.T) {
	t.Parallel()

	resolver := locales.MustNew([]string{"en", "es", "de"}, "en")

	byDefault := sourceLocales{resolver: resolver}
	if byDefault.Default() != "en" {
		t.Fatalf("expected site default, got %q", byDefault.Default())
	}
	if diff := cmp.Diff([]string{"es", "de"}, byDefault.NonDefault()); diff != "" {
		t.Fatalf("unexpected targets (-want +got):\n%s", diff)
	}

	fromSpanish := sourceLocales{source: "es", resolver: resolver}
	if diff := cmp.Diff([]string{"en", "de"}, fromSpanish.NonDefault()); diff != "" {
		t.Fatalf("unexpected targets (-want +got):\n%s", diff)
	}
}
