package titles

import (
	"errors"
	"testing"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/runtimeconfig"
	"github.com/google/go-cmp/cmp"
)

func TestRulesFromConfig(t *testing.T) {
	t.Parallel()

	rules, err := RulesFromConfig(nil)
	if err != nil || len(rules) != len(DefaultRules()) {
		t.Fatalf("expected default rules, got %d (%v)", len(rules), err)
	}

	rules, err = RulesFromConfig([]runtimeconfig.TitleRuleConfig{{
		Slug:     " Binary-Plan ",
		Kind:     "plan",
		Variants: []string{"Binary Plan"},
		Keywords: []string{"binary"},
	}})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []Rule{{Slug: "binary-plan", Kind: content.KindPlan, Variants: []string{"Binary Plan"}, Keywords: []string{"binary"}}}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("unexpected rules (-want +got):\n%s", diff)
	}

	if _, err := RulesFromConfig([]runtimeconfig.TitleRuleConfig{{Kind: "plan"}}); !errors.Is(err, runtimeconfig.ErrTitleRuleSlugRequired) {
		t.Fatalf("expected slug error, got %v", err)
	}
	if _, err := RulesFromConfig([]runtimeconfig.TitleRuleConfig{{Slug: "x", Kind: "menu"}}); !errors.Is(err, content.ErrUnknownKind) {
		t.Fatalf("expected kind error, got %v", err)
	}
}
