// Package overrides reconciles the hardcoded site navigation, footer and CTA
// defaults with admin-entered overrides for a locale.
package overrides

import (
	"errors"
	"fmt"
	"time"
)

// Link is a labelled, optionally absent, hyperlink.
type Link struct {
	Label string  `json:"label"`
	Href  *string `json:"href"`
}

// NavKind tags a navigation entry as a plain link or a mega menu.
type NavKind string

const (
	NavKindInherit NavKind = ""
	NavKindLink    NavKind = "link"
	NavKindMega    NavKind = "mega"
)

// NavItem is a resolved top-level navigation entry. Mega is nil for plain
// links.
type NavItem struct {
	Label string    `json:"label"`
	Href  *string   `json:"href"`
	Order int       `json:"order"`
	Mega  *MegaMenu `json:"mega,omitempty"`
}

// Kind reports which variant the item is.
func (n NavItem) Kind() NavKind {
	if n.Mega != nil {
		return NavKindMega
	}
	return NavKindLink
}

// MegaMenu groups the dropdown sections of a mega navigation entry.
type MegaMenu struct {
	Highlights []MegaHighlight `json:"highlights,omitempty"`
	Cards      []MegaCard      `json:"cards,omitempty"`
	Categories []MegaCategory  `json:"categories,omitempty"`
}

type MegaHighlight struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Href        *string `json:"href"`
}

type MegaCard struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Href        *string `json:"href"`
}

type MegaCategory struct {
	Title string `json:"title"`
	Links []Link `json:"links,omitempty"`
}

// FooterColumn is a titled column of footer links.
type FooterColumn struct {
	Title string `json:"title"`
	Links []Link `json:"links,omitempty"`
}

// FooterContact is a contact line such as an email address or phone number.
type FooterContact struct {
	Label string  `json:"label"`
	Value string  `json:"value,omitempty"`
	Icon  string  `json:"icon,omitempty"`
	Href  *string `json:"href"`
}

// FooterLink is an entry of the footer bottom bar (legal links).
type FooterLink struct {
	Title string  `json:"title"`
	Href  *string `json:"href"`
}

// Layout is the fully resolved site chrome for one locale.
type Layout struct {
	Nav               []NavItem       `json:"nav"`
	FooterColumns     []FooterColumn  `json:"footer_columns"`
	FooterContacts    []FooterContact `json:"footer_contacts"`
	FooterBottomLinks []FooterLink    `json:"footer_bottom_links"`
	CTA               Link            `json:"cta"`
}

// NavOverride is an admin edit of one navigation entry. Kind link turns the
// entry into a plain link, kind mega requires Mega, and an empty kind keeps
// whatever the default entry is.
type NavOverride struct {
	Kind  NavKind       `json:"kind,omitempty"`
	Label Field[string] `json:"label,omitzero"`
	Href  Field[string] `json:"href,omitzero"`
	Order Field[int]    `json:"order,omitzero"`
	Mega  *MegaOverride `json:"mega,omitempty"`
}

// MegaOverride replaces mega menu sections as whole lists.
type MegaOverride struct {
	Highlights Field[[]MegaHighlight] `json:"highlights,omitzero"`
	Cards      Field[[]MegaCard]      `json:"cards,omitzero"`
	Categories Field[[]MegaCategory]  `json:"categories,omitzero"`
}

type FooterColumnOverride struct {
	Title Field[string] `json:"title,omitzero"`
	Links Field[[]Link] `json:"links,omitzero"`
}

type FooterContactOverride struct {
	Label Field[string] `json:"label,omitzero"`
	Value Field[string] `json:"value,omitzero"`
	Icon  Field[string] `json:"icon,omitzero"`
	Href  Field[string] `json:"href,omitzero"`
}

type FooterLinkOverride struct {
	Title Field[string] `json:"title,omitzero"`
	Href  Field[string] `json:"href,omitzero"`
}

type CTAOverride struct {
	Label Field[string] `json:"label,omitzero"`
	Href  Field[string] `json:"href,omitzero"`
}

// LayoutOverrides is everything an admin can override for one locale.
type LayoutOverrides struct {
	Nav               []NavOverride           `json:"nav,omitempty"`
	FooterColumns     []FooterColumnOverride  `json:"footer_columns,omitempty"`
	FooterContacts    []FooterContactOverride `json:"footer_contacts,omitempty"`
	FooterBottomLinks []FooterLinkOverride    `json:"footer_bottom_links,omitempty"`
	CTA               *CTAOverride            `json:"cta,omitempty"`
}

// IsEmpty reports whether the overrides would leave the defaults untouched.
func (o LayoutOverrides) IsEmpty() bool {
	return len(o.Nav) == 0 && len(o.FooterColumns) == 0 && len(o.FooterContacts) == 0 &&
		len(o.FooterBottomLinks) == 0 && o.CTA == nil
}

var (
	ErrUnknownNavKind  = errors.New("overrides: unknown navigation kind")
	ErrLinkWithMega    = errors.New("overrides: link entries cannot carry a mega menu")
	ErrMegaWithoutMenu = errors.New("overrides: mega entries require a mega menu")
)

// Validate checks the link/mega tagging of a navigation override.
func (o NavOverride) Validate() error {
	switch o.Kind {
	case NavKindInherit:
	case NavKindLink:
		if o.Mega != nil {
			return ErrLinkWithMega
		}
	case NavKindMega:
		if o.Mega == nil {
			return ErrMegaWithoutMenu
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNavKind, o.Kind)
	}
	return nil
}

// StoredOverrides is the persisted settings row for one locale.
type StoredOverrides struct {
	Locale    string          `json:"locale"`
	Overrides LayoutOverrides `json:"overrides"`
	UpdatedAt time.Time       `json:"updated_at"`
}
