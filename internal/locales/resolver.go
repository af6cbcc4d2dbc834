// Package locales resolves requested language tags against the fixed set of
// supported site locales and builds locale-prefixed paths and links.
package locales

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrNoLocales              = errors.New("locales: at least one locale is required")
	ErrDefaultLocaleMissing   = errors.New("locales: default locale is not in the supported set")
	ErrInvalidSupportedLocale = errors.New("locales: supported locale is empty")
)

// Resolver is immutable once built and safe for concurrent use.
type Resolver struct {
	supported []string
	set       map[string]struct{}
	fallback  string
	matcher   language.Matcher
	// matchOrder maps matcher indexes back to locale codes; the default
	// locale sits at index 0 so it wins when nothing matches.
	matchOrder []string
}

// New builds a Resolver for the supported locales. The default locale must
// be one of them.
func New(supported []string, defaultLocale string) (*Resolver, error) {
	if len(supported) == 0 {
		return nil, ErrNoLocales
	}
	r := &Resolver{
		supported: make([]string, 0, len(supported)),
		set:       make(map[string]struct{}, len(supported)),
		fallback:  normalize(defaultLocale),
	}
	for _, locale := range supported {
		code := normalize(locale)
		if code == "" {
			return nil, ErrInvalidSupportedLocale
		}
		if _, dup := r.set[code]; dup {
			continue
		}
		r.set[code] = struct{}{}
		r.supported = append(r.supported, code)
	}
	if _, ok := r.set[r.fallback]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefaultLocaleMissing, defaultLocale)
	}

	r.matchOrder = append([]string{r.fallback}, slices.DeleteFunc(slices.Clone(r.supported), func(code string) bool {
		return code == r.fallback
	})...)
	tags := make([]language.Tag, 0, len(r.matchOrder))
	for _, code := range r.matchOrder {
		tags = append(tags, language.Make(code))
	}
	r.matcher = language.NewMatcher(tags)
	return r, nil
}

// MustNew is New for static configuration known to be valid.
func MustNew(supported []string, defaultLocale string) *Resolver {
	r, err := New(supported, defaultLocale)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns tag when it names a supported locale and the default
// locale otherwise. It never fails.
func (r *Resolver) Resolve(tag string) string {
	code := normalize(tag)
	if _, ok := r.set[code]; ok {
		return code
	}
	return r.fallback
}

// IsSupported reports whether tag names a supported locale.
func (r *Resolver) IsSupported(tag string) bool {
	_, ok := r.set[normalize(tag)]
	return ok
}

// Default returns the default locale.
func (r *Resolver) Default() string { return r.fallback }

// Supported returns the supported locales in configuration order.
func (r *Resolver) Supported() []string { return slices.Clone(r.supported) }

// NonDefault returns every supported locale except the default one.
func (r *Resolver) NonDefault() []string {
	return slices.DeleteFunc(r.Supported(), func(code string) bool { return code == r.fallback })
}

// MatchAcceptLanguage picks the best supported locale for an
// Accept-Language header value, falling back to the default locale.
func (r *Resolver) MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return r.fallback
	}
	_, index, confidence := r.matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(r.matchOrder) {
		return r.fallback
	}
	return r.matchOrder[index]
}

// LocalizedPath prefixes path with the resolved locale: ("es", "/pricing")
// yields "/es/pricing" and unknown locales use the default.
func (r *Resolver) LocalizedPath(locale, path string) string {
	prefix := "/" + r.Resolve(locale)
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	if path == "/" {
		return prefix
	}
	return prefix + path
}

// SplitPath separates a leading locale segment from the rest of the path.
// Paths without a supported locale segment resolve to the default locale.
func (r *Resolver) SplitPath(path string) (string, string) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(path), "/")
	head, rest, _ := strings.Cut(trimmed, "/")
	if r.IsSupported(head) {
		return normalize(head), "/" + rest
	}
	return r.fallback, "/" + trimmed
}

func normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
