package overrides

import "strings"

// Defaults returns the hardcoded chrome for a locale.
type Defaults interface {
	Layout(locale string) (Layout, bool)
}

// StaticDefaults serves layouts from a fixed map keyed by locale.
type StaticDefaults map[string]Layout

func (d StaticDefaults) Layout(locale string) (Layout, bool) {
	layout, ok := d[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return Layout{}, false
	}
	return CloneLayout(layout), true
}

func ptr(s string) *string { return &s }

// SiteDefaults is the built-in Cloud MLM Software chrome. Locales without an
// entry fall back to the default locale's layout.
func SiteDefaults() StaticDefaults {
	return StaticDefaults{
		"en": {
			Nav: []NavItem{
				{Label: "Home", Href: ptr("/"), Order: 0},
				{Label: "Services", Href: ptr("/services"), Order: 1, Mega: &MegaMenu{
					Highlights: []MegaHighlight{
						{Title: "MLM Software", Description: "Complete network marketing platform", Href: ptr("/services/mlm-software-development")},
					},
					Cards: []MegaCard{
						{Title: "MLM Consulting", Description: "Plan design and compliance reviews", Icon: "briefcase", Href: ptr("/services/mlm-consulting")},
						{Title: "E-commerce Integration", Description: "Shopify, WooCommerce and Magento", Icon: "cart", Href: ptr("/services/ecommerce-integration")},
					},
					Categories: []MegaCategory{
						{Title: "Compensation Plans", Links: []Link{
							{Label: "Binary Plan", Href: ptr("/plans/binary-plan")},
							{Label: "Matrix Plan", Href: ptr("/plans/matrix-plan")},
							{Label: "Gift Plan", Href: ptr("/plans/gift-plan")},
						}},
					},
				}},
				{Label: "Pricing", Href: ptr("/pricing"), Order: 2},
				{Label: "Blog", Href: ptr("/blog"), Order: 3},
				{Label: "Contact", Href: ptr("/contact"), Order: 4},
			},
			FooterColumns: []FooterColumn{
				{Title: "Company", Links: []Link{
					{Label: "About Us", Href: ptr("/about")},
					{Label: "Careers", Href: ptr("/careers")},
				}},
				{Title: "Solutions", Links: []Link{
					{Label: "MLM Software", Href: ptr("/services/mlm-software-development")},
					{Label: "Demo", Href: ptr("/demo")},
				}},
				{Title: "Resources", Links: []Link{
					{Label: "Blog", Href: ptr("/blog")},
					{Label: "FAQ", Href: ptr("/faq")},
				}},
			},
			FooterContacts: []FooterContact{
				{Label: "Email", Value: "sales@cloudmlmsoftware.com", Icon: "mail", Href: ptr("mailto:sales@cloudmlmsoftware.com")},
				{Label: "Phone", Value: "+1 202 555 0142", Icon: "phone", Href: ptr("tel:+12025550142")},
			},
			FooterBottomLinks: []FooterLink{
				{Title: "Privacy Policy", Href: ptr("/privacy")},
				{Title: "Terms of Service", Href: ptr("/terms")},
			},
			CTA: Link{Label: "Book a Demo", Href: ptr("/demo")},
		},
		"es": {
			Nav: []NavItem{
				{Label: "Inicio", Href: ptr("/"), Order: 0},
				{Label: "Servicios", Href: ptr("/services"), Order: 1},
				{Label: "Precios", Href: ptr("/pricing"), Order: 2},
				{Label: "Blog", Href: ptr("/blog"), Order: 3},
				{Label: "Contacto", Href: ptr("/contact"), Order: 4},
			},
			FooterColumns: []FooterColumn{
				{Title: "Empresa", Links: []Link{{Label: "Sobre nosotros", Href: ptr("/about")}}},
				{Title: "Recursos", Links: []Link{{Label: "Blog", Href: ptr("/blog")}}},
			},
			FooterContacts: []FooterContact{
				{Label: "Correo", Value: "sales@cloudmlmsoftware.com", Icon: "mail", Href: ptr("mailto:sales@cloudmlmsoftware.com")},
			},
			FooterBottomLinks: []FooterLink{
				{Title: "Política de privacidad", Href: ptr("/privacy")},
			},
			CTA: Link{Label: "Solicitar demo", Href: ptr("/demo")},
		},
	}
}
