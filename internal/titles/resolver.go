// Package titles resolves the hero title of service and plan pages from the
// content store and admin page title overrides.
package titles

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// ErrAmbiguousMatch is returned in strict mode when keyword matching finds
// records from more than one translation group.
var ErrAmbiguousMatch = errors.New("titles: keyword match is ambiguous")

// MatchKind records which strategy located the content record.
type MatchKind string

const (
	MatchNone    MatchKind = ""
	MatchVariant MatchKind = "variant"
	MatchSlug    MatchKind = "slug"
	MatchKeyword MatchKind = "keyword"
)

// ContentLister lists content records; an empty locale lists all locales.
type ContentLister interface {
	List(ctx context.Context, kind content.Kind, locale string) ([]*content.Record, error)
}

// OverrideFinder finds the page title override for a page and locale.
type OverrideFinder interface {
	Find(ctx context.Context, pageKey, locale string) (*pagetitles.Override, error)
}

// LocaleResolver maps requested tags onto supported locales.
type LocaleResolver interface {
	Resolve(tag string) string
	Default() string
}

// ResolvedTitle is the hero copy for a page in one locale.
type ResolvedTitle struct {
	Slug         string    `json:"slug"`
	Locale       string    `json:"locale"`
	Title        string    `json:"title"`
	Badge        string    `json:"badge,omitempty"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Image        string    `json:"image,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	RecordID     uuid.UUID `json:"record_id,omitzero"`
	RecordLocale string    `json:"record_locale,omitempty"`
	Match        MatchKind `json:"match,omitempty"`
	Overridden   bool      `json:"overridden"`
}

// AmbiguityError lists the records that matched the same keywords.
type AmbiguityError struct {
	Slug       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%s: slug %q matched %s", ErrAmbiguousMatch, e.Slug, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguityError) Unwrap() error { return ErrAmbiguousMatch }

// Option configures the resolver.
type Option func(*Resolver)

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(r *Resolver) {
		if rules != nil {
			r.rules = indexRules(rules)
		}
	}
}

// WithStrictMatching fails ambiguous keyword matches instead of logging them.
func WithStrictMatching(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver is immutable after construction.
type Resolver struct {
	records   ContentLister
	overrides OverrideFinder
	locales   LocaleResolver
	rules     map[string]Rule
	strict    bool
	logger    interfaces.Logger
}

// NewResolver builds a title resolver over the content store and override
// repository.
func NewResolver(records ContentLister, overrides OverrideFinder, locales LocaleResolver, opts ...Option) *Resolver {
	r := &Resolver{
		records:   records,
		overrides: overrides,
		locales:   locales,
		rules:     indexRules(DefaultRules()),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func indexRules(rules []Rule) map[string]Rule {
	out := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		rule.Slug = NormalizeSlug(rule.Slug)
		if rule.Slug == "" {
			continue
		}
		if rule.Kind == "" {
			rule.Kind = content.KindService
		}
		out[rule.Slug] = rule
	}
	return out
}

// Rule returns the rule for slug, or a bare service rule when none is
// configured.
func (r *Resolver) Rule(slug string) Rule {
	slug = NormalizeSlug(slug)
	if rule, ok := r.rules[slug]; ok {
		return rule
	}
	return Rule{Slug: slug, Kind: content.KindService}
}

// Resolve returns the hero copy for slug in locale, or nil when neither an
// override nor a content record exists. Content store failures are logged
// and degrade to the override alone; the only error is ErrAmbiguousMatch in
// strict mode.
func (r *Resolver) Resolve(ctx context.Context, slug, locale string) (*ResolvedTitle, error) {
	rule := r.Rule(slug)
	if rule.Slug == "" {
		return nil, nil
	}
	locale = r.locales.Resolve(locale)
	logger := logging.WithFields(
		logging.WithLocaleContext(r.logger.WithContext(ctx), string(rule.Kind), locale),
		map[string]any{"slug": rule.Slug},
	)

	override := r.findOverride(ctx, logger, rule, locale)

	records, err := r.records.List(ctx, rule.Kind, "")
	if err != nil {
		logger.Warn("title.resolve.store_failed", "error", err)
		return merge(rule.Slug, locale, override, nil, MatchNone), nil
	}

	base, match, err := r.match(logger, rule, records)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return merge(rule.Slug, locale, override, nil, MatchNone), nil
	}
	return merge(rule.Slug, locale, override, r.localize(base, records, locale), match), nil
}

func (r *Resolver) findOverride(ctx context.Context, logger interfaces.Logger, rule Rule, locale string) *pagetitles.Override {
	if r.overrides == nil {
		return nil
	}
	for _, key := range []string{rule.pageKey(), rule.Slug} {
		override, err := r.overrides.Find(ctx, key, locale)
		if err == nil {
			return override
		}
		if !pagetitles.IsNotFound(err) {
			logger.Warn("title.resolve.override_failed", "page_key", key, "error", err)
			return nil
		}
	}
	return nil
}

// match applies the strategies in priority order across every record.
func (r *Resolver) match(logger interfaces.Logger, rule Rule, records []*content.Record) (*content.Record, MatchKind, error) {
	if len(rule.Variants) > 0 {
		variants := make(map[string]struct{}, len(rule.Variants))
		for _, variant := range rule.Variants {
			variants[NormalizeTitle(variant)] = struct{}{}
		}
		for _, record := range records {
			if _, ok := variants[NormalizeTitle(record.Title)]; ok {
				return record, MatchVariant, nil
			}
		}
	}

	slugs := append([]string{rule.Slug}, rule.Aliases...)
	slugs = append(slugs, rule.FallbackSlugs...)
	for _, candidate := range slugs {
		candidate = NormalizeSlug(candidate)
		for _, record := range records {
			if CanonicalSlug(record.Title) == candidate || (record.Slug != "" && record.Slug == candidate) {
				return record, MatchSlug, nil
			}
		}
	}

	if len(rule.Keywords) == 0 {
		return nil, MatchNone, nil
	}
	var candidates []*content.Record
	for _, record := range records {
		if containsAll(NormalizeTitle(record.Title), rule.Keywords) {
			candidates = append(candidates, record)
		}
	}
	if len(candidates) == 0 {
		return nil, MatchNone, nil
	}
	if groups := distinctGroups(candidates); len(groups) > 1 {
		if r.strict {
			return nil, MatchNone, &AmbiguityError{Slug: rule.Slug, Candidates: groups}
		}
		logger.Warn("title.resolve.ambiguous_keywords", "candidates", groups, "chosen", candidates[0].ID)
	}
	return candidates[0], MatchKeyword, nil
}

// localize swaps base for its sibling in locale, then in the default
// locale, keeping base when neither exists.
func (r *Resolver) localize(base *content.Record, records []*content.Record, locale string) *content.Record {
	for _, want := range []string{locale, r.locales.Default()} {
		if base.Locale == want {
			return base
		}
		for _, record := range records {
			if record.Locale == want && base.SameGroup(record) {
				return record
			}
		}
	}
	return base
}

func merge(slug, locale string, override *pagetitles.Override, record *content.Record, match MatchKind) *ResolvedTitle {
	if override == nil && record == nil {
		return nil
	}
	out := &ResolvedTitle{Slug: slug, Locale: locale, Match: match}
	if record != nil {
		out.Title = record.Title
		out.Subtitle = record.Description
		out.Badge = stringField(record.Fields, "badge")
		out.Image = record.Image
		out.Icon = record.Icon
		out.RecordID = record.ID
		out.RecordLocale = record.Locale
	}
	if override != nil {
		out.Overridden = true
		out.Title = coalesce(override.Title, out.Title)
		out.Badge = coalesce(override.Badge, out.Badge)
		out.Subtitle = coalesce(override.Subtitle, out.Subtitle)
	}
	return out
}

func coalesce(preferred, fallback string) string {
	if strings.TrimSpace(preferred) != "" {
		return preferred
	}
	return fallback
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func containsAll(title string, keywords []string) bool {
	for _, keyword := range keywords {
		if !strings.Contains(title, NormalizeTitle(keyword)) {
			return false
		}
	}
	return true
}

func distinctGroups(records []*content.Record) []string {
	var groups []string
	var seen []*content.Record
	for _, record := range records {
		if slices.ContainsFunc(seen, record.SameGroup) {
			continue
		}
		seen = append(seen, record)
		groups = append(groups, fmt.Sprintf("%s (%s)", record.Title, record.ID))
	}
	return groups
}
