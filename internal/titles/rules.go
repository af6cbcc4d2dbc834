package titles

import (
	"github.com/cloudmlm/go-sitecms/internal/content"
)

// Rule tells the resolver how to find the content record behind a page.
type Rule struct {
	Slug string
	// PageKey is the page title override key. Empty derives it from Kind.
	PageKey string
	Kind    content.Kind
	// Variants are known record titles for the page, compared after
	// NormalizeTitle.
	Variants []string
	// Aliases are canonical slugs that also identify the page.
	Aliases []string
	// FallbackSlugs are tried after the canonical slug and aliases.
	FallbackSlugs []string
	// Keywords must all appear in a normalized title for a fuzzy match.
	Keywords []string
}

// DefaultRules is the built-in table for the service and plan pages.
func DefaultRules() []Rule {
	return []Rule{
		{
			Slug: "mlm-consulting",
			Kind: content.KindService,
			Variants: []string{
				"2MLM Consulting Services",
				"MLM Consulting Services",
				"MLM Consulting",
				"Consultoría MLM",
				"Conseil MLM",
			},
			Aliases:  []string{"mlm-consulting-services"},
			Keywords: []string{"mlm", "consult"},
		},
		{
			Slug: "mlm-software-development",
			Kind: content.KindService,
			Variants: []string{
				"MLM Software Development",
				"Custom MLM Software Development",
			},
			Aliases:       []string{"custom-mlm-software-development"},
			FallbackSlugs: []string{"mlm-software"},
			Keywords:      []string{"software", "development"},
		},
		{
			Slug: "ecommerce-integration",
			Kind: content.KindService,
			Variants: []string{
				"E-commerce Integration",
				"Ecommerce Integration",
				"E-Commerce Integration Services",
			},
			Aliases:  []string{"e-commerce-integration"},
			Keywords: []string{"commerce", "integration"},
		},
		{
			Slug:     "mlm-mobile-app",
			Kind:     content.KindService,
			Variants: []string{"MLM Mobile App", "MLM Mobile App Development"},
			Aliases:  []string{"mlm-mobile-app-development"},
			Keywords: []string{"mobile", "app"},
		},
		{
			Slug:     "binary-plan",
			Kind:     content.KindPlan,
			Variants: []string{"Binary Plan", "Binary MLM Plan", "Binary Compensation Plan"},
			Aliases:  []string{"binary-mlm-plan"},
			Keywords: []string{"binary"},
		},
		{
			Slug:     "matrix-plan",
			Kind:     content.KindPlan,
			Variants: []string{"Matrix Plan", "Matrix MLM Plan"},
			Aliases:  []string{"matrix-mlm-plan"},
			Keywords: []string{"matrix"},
		},
		{
			Slug:     "gift-plan",
			Kind:     content.KindPlan,
			Variants: []string{"Gift Plan", "Gifting Plan", "Gift MLM Plan"},
			Keywords: []string{"gift"},
		},
		{
			Slug:     "monoline-plan",
			Kind:     content.KindPlan,
			Variants: []string{"Monoline Plan", "Monoline MLM Plan"},
			Keywords: []string{"monoline"},
		},
	}
}

// pageKey is the override key for the rule's page.
func (r Rule) pageKey() string {
	if r.PageKey != "" {
		return NormalizeSlug(r.PageKey)
	}
	return pagePrefix(r.Kind) + "/" + r.Slug
}

func pagePrefix(kind content.Kind) string {
	switch kind {
	case content.KindPlan:
		return "plans"
	case content.KindIndustrySolution:
		return "industries"
	case content.KindBlogPost:
		return "blog"
	default:
		return "services"
	}
}
