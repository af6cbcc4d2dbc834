package di

import "github.com/cloudmlm/go-sitecms/internal/locales"

// sourceLocales presents the translation source locale as the backfill
// default. It matches the site default unless translation.source_locale
// says otherwise.
type sourceLocales struct {
	source   string
	resolver *locales.Resolver
}

func (s sourceLocales) Default() string {
	if s.source == "" {
		return s.resolver.Default()
	}
	return s.source
}

func (s sourceLocales) NonDefault() []string {
	source := s.Default()
	var out []string
	for _, locale := range s.resolver.Supported() {
		if locale != source {
			out = append(out, locale)
		}
	}
	return out
}
