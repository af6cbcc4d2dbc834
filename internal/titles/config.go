package titles

import (
	"fmt"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/runtimeconfig"
)

// RulesFromConfig converts configured rules. An empty list yields
// DefaultRules.
func RulesFromConfig(cfgs []runtimeconfig.TitleRuleConfig) ([]Rule, error) {
	if len(cfgs) == 0 {
		return DefaultRules(), nil
	}
	rules := make([]Rule, 0, len(cfgs))
	for i, cfg := range cfgs {
		slug := NormalizeSlug(cfg.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w (rule %d)", runtimeconfig.ErrTitleRuleSlugRequired, i)
		}
		kind, err := content.ParseKind(cfg.Kind)
		if err != nil {
			return nil, fmt.Errorf("titles: rule %q: %w", slug, err)
		}
		rules = append(rules, Rule{
			Slug:          slug,
			PageKey:       strings.TrimSpace(cfg.PageKey),
			Kind:          kind,
			Variants:      cfg.Variants,
			Aliases:       cfg.Aliases,
			FallbackSlugs: cfg.FallbackSlugs,
			Keywords:      cfg.Keywords,
		})
	}
	return rules, nil
}
