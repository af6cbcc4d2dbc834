package overrides

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// MergeLayout applies every override section to base. It never fails.
func MergeLayout(base Layout, o LayoutOverrides) Layout {
	return Layout{
		Nav:               MergeNav(base.Nav, o.Nav),
		FooterColumns:     MergeFooterColumns(base.FooterColumns, o.FooterColumns),
		FooterContacts:    MergeFooterContacts(base.FooterContacts, o.FooterContacts),
		FooterBottomLinks: MergeFooterBottomLinks(base.FooterBottomLinks, o.FooterBottomLinks),
		CTA:               MergeCTA(base.CTA, o.CTA),
	}
}

// MergeNav merges navigation overrides into base. Overrides pair with base
// entries by label, then by order (or list position when no order is
// given). The result is sorted by order; with no overrides base is returned
// as-is.
func MergeNav(base []NavItem, overrides []NavOverride) []NavItem {
	if len(overrides) == 0 {
		return cloneNavItems(base)
	}

	byOrder := make(map[int]int, len(base))
	maxOrder := -1
	for i, item := range base {
		if _, ok := byOrder[item.Order]; !ok {
			byOrder[item.Order] = i
		}
		maxOrder = max(maxOrder, item.Order)
	}

	matches, consumed := pair(
		keys(base, func(n NavItem) string { return n.Label }),
		overrideKeys(overrides, func(o NavOverride) Field[string] { return o.Label }),
		func(i int) (int, bool) {
			if order, ok := overrides[i].Order.Get(); ok {
				j, found := byOrder[order]
				return j, found
			}
			return i, true
		},
	)

	out := make([]NavItem, 0, len(base)+len(overrides))
	for i, o := range overrides {
		if j := matches[i]; j >= 0 {
			out = append(out, mergeNavItem(base[j], o))
			continue
		}
		out = append(out, newNavItem(o, i, maxOrder+1+i))
	}
	for j, item := range base {
		if !consumed[j] {
			out = append(out, cloneNavItem(item))
		}
	}

	slices.SortStableFunc(out, func(a, b NavItem) int { return cmp.Compare(a.Order, b.Order) })
	return out
}

func mergeNavItem(base NavItem, o NavOverride) NavItem {
	item := NavItem{
		Label: text(base.Label, o.Label),
		Href:  href(base.Href, o.Href),
		Order: base.Order,
	}
	if order, ok := o.Order.Get(); ok {
		item.Order = order
	}
	if o.Kind != NavKindLink {
		item.Mega = mergeMega(base.Mega, o.Mega)
	}
	return item
}

func newNavItem(o NavOverride, index, defaultOrder int) NavItem {
	item := NavItem{
		Label: text(placeholder("Item", index), o.Label),
		Href:  href(nil, o.Href),
		Order: defaultOrder,
	}
	if order, ok := o.Order.Get(); ok {
		item.Order = order
	}
	if o.Kind != NavKindLink && o.Mega != nil {
		item.Mega = mergeMega(nil, o.Mega)
	}
	return item
}

// mergeMega replaces each section wholesale when the override supplies a
// non-empty list. Items inside a section are never merged field by field.
func mergeMega(base *MegaMenu, o *MegaOverride) *MegaMenu {
	if o == nil {
		return cloneMega(base)
	}
	merged := cloneMega(base)
	if merged == nil {
		merged = &MegaMenu{}
	}
	merged.Highlights = list(merged.Highlights, o.Highlights, cloneHighlights)
	merged.Cards = list(merged.Cards, o.Cards, cloneCards)
	merged.Categories = list(merged.Categories, o.Categories, cloneCategories)
	return merged
}

// MergeFooterColumns merges footer column overrides by title, then position.
// Unmatched overrides become "Column {n}" when untitled.
func MergeFooterColumns(base []FooterColumn, overrides []FooterColumnOverride) []FooterColumn {
	if len(overrides) == 0 {
		return cloneColumns(base)
	}
	matches, consumed := pair(
		keys(base, func(c FooterColumn) string { return c.Title }),
		overrideKeys(overrides, func(o FooterColumnOverride) Field[string] { return o.Title }),
		positional,
	)

	out := make([]FooterColumn, 0, len(base)+len(overrides))
	for i, o := range overrides {
		var col FooterColumn
		if j := matches[i]; j >= 0 {
			col = FooterColumn{Title: base[j].Title, Links: cloneLinks(base[j].Links)}
		} else {
			col = FooterColumn{Title: placeholder("Column", i)}
		}
		col.Title = text(col.Title, o.Title)
		col.Links = list(col.Links, o.Links, cloneLinks)
		out = append(out, col)
	}
	for j, col := range base {
		if !consumed[j] {
			out = append(out, FooterColumn{Title: col.Title, Links: cloneLinks(col.Links)})
		}
	}
	return out
}

// MergeFooterContacts merges contact overrides by label, then position.
func MergeFooterContacts(base []FooterContact, overrides []FooterContactOverride) []FooterContact {
	if len(overrides) == 0 {
		return cloneContacts(base)
	}
	matches, consumed := pair(
		keys(base, func(c FooterContact) string { return c.Label }),
		overrideKeys(overrides, func(o FooterContactOverride) Field[string] { return o.Label }),
		positional,
	)

	out := make([]FooterContact, 0, len(base)+len(overrides))
	for i, o := range overrides {
		contact := FooterContact{Label: placeholder("Contact", i)}
		if j := matches[i]; j >= 0 {
			contact = cloneContact(base[j])
		}
		contact.Label = text(contact.Label, o.Label)
		contact.Value = optional(contact.Value, o.Value)
		contact.Icon = optional(contact.Icon, o.Icon)
		contact.Href = href(contact.Href, o.Href)
		out = append(out, contact)
	}
	for j, contact := range base {
		if !consumed[j] {
			out = append(out, cloneContact(contact))
		}
	}
	return out
}

// MergeFooterBottomLinks merges bottom bar links by title, then position.
// Override entries without a title are dropped before matching.
func MergeFooterBottomLinks(base []FooterLink, overrides []FooterLinkOverride) []FooterLink {
	overrides = slices.DeleteFunc(slices.Clone(overrides), func(o FooterLinkOverride) bool {
		title, ok := o.Title.Get()
		return !ok || strings.TrimSpace(title) == ""
	})
	if len(overrides) == 0 {
		return cloneFooterLinks(base)
	}
	matches, consumed := pair(
		keys(base, func(l FooterLink) string { return l.Title }),
		overrideKeys(overrides, func(o FooterLinkOverride) Field[string] { return o.Title }),
		positional,
	)

	out := make([]FooterLink, 0, len(base)+len(overrides))
	for i, o := range overrides {
		var link FooterLink
		if j := matches[i]; j >= 0 {
			link = FooterLink{Title: base[j].Title, Href: clonePtr(base[j].Href)}
		}
		link.Title = text(link.Title, o.Title)
		link.Href = href(link.Href, o.Href)
		out = append(out, link)
	}
	for j, link := range base {
		if !consumed[j] {
			out = append(out, FooterLink{Title: link.Title, Href: clonePtr(link.Href)})
		}
	}
	return out
}

// MergeCTA is the scalar variant used for the single call-to-action link.
func MergeCTA(base Link, o *CTAOverride) Link {
	merged := Link{Label: base.Label, Href: clonePtr(base.Href)}
	if o == nil {
		return merged
	}
	merged.Label = text(merged.Label, o.Label)
	merged.Href = href(merged.Href, o.Href)
	return merged
}

// pair assigns each override to at most one base index. All key matches are
// settled before any positional fallback so that a renamed entry cannot
// claim a base item another override names explicitly.
func pair(baseKeys, overrideKeys []string, position func(int) (int, bool)) ([]int, []bool) {
	consumed := make([]bool, len(baseKeys))
	matches := make([]int, len(overrideKeys))

	byKey := make(map[string][]int, len(baseKeys))
	for j, key := range baseKeys {
		if key != "" {
			byKey[key] = append(byKey[key], j)
		}
	}

	for i, key := range overrideKeys {
		matches[i] = -1
		for _, j := range byKey[key] {
			if !consumed[j] {
				matches[i] = j
				consumed[j] = true
				break
			}
		}
	}

	for i := range overrideKeys {
		if matches[i] >= 0 {
			continue
		}
		if j, ok := position(i); ok && j >= 0 && j < len(baseKeys) && !consumed[j] {
			matches[i] = j
			consumed[j] = true
		}
	}
	return matches, consumed
}

func positional(i int) (int, bool) { return i, true }

// MatchKey is the normalized matching key for labels and titles.
func MatchKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func keys[T any](items []T, label func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = MatchKey(label(item))
	}
	return out
}

func overrideKeys[T any](items []T, label func(T) Field[string]) []string {
	out := make([]string, len(items))
	for i, item := range items {
		if value, ok := label(item).Get(); ok {
			out[i] = MatchKey(value)
		}
	}
	return out
}

// text applies a required text field: only a non-blank value replaces base.
func text(base string, f Field[string]) string {
	if value, ok := f.Get(); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return base
}

// optional applies an optional text field, which null may blank out.
func optional(base string, f Field[string]) string {
	if f.IsClear() {
		return ""
	}
	return text(base, f)
}

// href applies a link field: null removes the link.
func href(base *string, f Field[string]) *string {
	if f.IsClear() {
		return nil
	}
	if value, ok := f.Get(); ok && strings.TrimSpace(value) != "" {
		return &value
	}
	return clonePtr(base)
}

func list[T any](base []T, f Field[[]T], clone func([]T) []T) []T {
	if f.IsClear() {
		return nil
	}
	if value, ok := f.Get(); ok && len(value) > 0 {
		return clone(value)
	}
	return base
}

func placeholder(prefix string, index int) string {
	return fmt.Sprintf("%s %d", prefix, index+1)
}
