package overrides

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneSlice[T any](items []T, clone func(T) T) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func cloneLink(l Link) Link { return Link{Label: l.Label, Href: clonePtr(l.Href)} }

func cloneLinks(items []Link) []Link { return cloneSlice(items, cloneLink) }

func cloneHighlights(items []MegaHighlight) []MegaHighlight {
	return cloneSlice(items, func(h MegaHighlight) MegaHighlight {
		h.Href = clonePtr(h.Href)
		return h
	})
}

func cloneCards(items []MegaCard) []MegaCard {
	return cloneSlice(items, func(c MegaCard) MegaCard {
		c.Href = clonePtr(c.Href)
		return c
	})
}

func cloneCategories(items []MegaCategory) []MegaCategory {
	return cloneSlice(items, func(c MegaCategory) MegaCategory {
		return MegaCategory{Title: c.Title, Links: cloneLinks(c.Links)}
	})
}

func cloneMega(m *MegaMenu) *MegaMenu {
	if m == nil {
		return nil
	}
	return &MegaMenu{
		Highlights: cloneHighlights(m.Highlights),
		Cards:      cloneCards(m.Cards),
		Categories: cloneCategories(m.Categories),
	}
}

func cloneNavItem(n NavItem) NavItem {
	return NavItem{Label: n.Label, Href: clonePtr(n.Href), Order: n.Order, Mega: cloneMega(n.Mega)}
}

func cloneNavItems(items []NavItem) []NavItem { return cloneSlice(items, cloneNavItem) }

func cloneColumns(items []FooterColumn) []FooterColumn {
	return cloneSlice(items, func(c FooterColumn) FooterColumn {
		return FooterColumn{Title: c.Title, Links: cloneLinks(c.Links)}
	})
}

func cloneContact(c FooterContact) FooterContact {
	c.Href = clonePtr(c.Href)
	return c
}

func cloneContacts(items []FooterContact) []FooterContact { return cloneSlice(items, cloneContact) }

func cloneFooterLinks(items []FooterLink) []FooterLink {
	return cloneSlice(items, func(l FooterLink) FooterLink {
		return FooterLink{Title: l.Title, Href: clonePtr(l.Href)}
	})
}

// CloneLayout returns a deep copy of l.
func CloneLayout(l Layout) Layout {
	return Layout{
		Nav:               cloneNavItems(l.Nav),
		FooterColumns:     cloneColumns(l.FooterColumns),
		FooterContacts:    cloneContacts(l.FooterContacts),
		FooterBottomLinks: cloneFooterLinks(l.FooterBottomLinks),
		CTA:               cloneLink(l.CTA),
	}
}
