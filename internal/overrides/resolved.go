package overrides

// The *From helpers turn resolved items back into fully specified
// overrides. Re-merging a merged layout expressed this way against the same
// defaults yields the same layout.

func hrefField(h *string) Field[string] {
	if h == nil {
		return Clear[string]()
	}
	return Value(*h)
}

func textField(s string) Field[string] {
	if s == "" {
		return Clear[string]()
	}
	return Value(s)
}

func listField[T any](items []T) Field[[]T] {
	if len(items) == 0 {
		return Clear[[]T]()
	}
	return Value(items)
}

// NavOverrideFrom expresses a resolved navigation entry as an override.
func NavOverrideFrom(item NavItem) NavOverride {
	o := NavOverride{
		Kind:  item.Kind(),
		Label: Value(item.Label),
		Href:  hrefField(item.Href),
		Order: Value(item.Order),
	}
	if item.Mega != nil {
		o.Mega = &MegaOverride{
			Highlights: listField(cloneHighlights(item.Mega.Highlights)),
			Cards:      listField(cloneCards(item.Mega.Cards)),
			Categories: listField(cloneCategories(item.Mega.Categories)),
		}
	}
	return o
}

func FooterColumnOverrideFrom(col FooterColumn) FooterColumnOverride {
	return FooterColumnOverride{Title: Value(col.Title), Links: listField(cloneLinks(col.Links))}
}

func FooterContactOverrideFrom(c FooterContact) FooterContactOverride {
	return FooterContactOverride{
		Label: Value(c.Label),
		Value: textField(c.Value),
		Icon:  textField(c.Icon),
		Href:  hrefField(c.Href),
	}
}

func FooterLinkOverrideFrom(l FooterLink) FooterLinkOverride {
	return FooterLinkOverride{Title: Value(l.Title), Href: hrefField(l.Href)}
}

// OverridesFrom expresses a whole resolved layout as overrides.
func OverridesFrom(l Layout) LayoutOverrides {
	o := LayoutOverrides{
		CTA: &CTAOverride{Label: Value(l.CTA.Label), Href: hrefField(l.CTA.Href)},
	}
	for _, item := range l.Nav {
		o.Nav = append(o.Nav, NavOverrideFrom(item))
	}
	for _, col := range l.FooterColumns {
		o.FooterColumns = append(o.FooterColumns, FooterColumnOverrideFrom(col))
	}
	for _, c := range l.FooterContacts {
		o.FooterContacts = append(o.FooterContacts, FooterContactOverrideFrom(c))
	}
	for _, link := range l.FooterBottomLinks {
		o.FooterBottomLinks = append(o.FooterBottomLinks, FooterLinkOverrideFrom(link))
	}
	return o
}
