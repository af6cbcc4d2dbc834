package overrides

import (
	"context"
	"errors"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

// LocaleResolver maps a requested tag onto a supported locale.
type LocaleResolver interface {
	Resolve(tag string) string
	Default() string
}

// Service resolves the site chrome for a locale and manages the stored
// overrides behind it.
type Service interface {
	ResolveLayout(ctx context.Context, locale string) Layout
	Overrides(ctx context.Context, locale string) (StoredOverrides, error)
	SaveOverrides(ctx context.Context, locale string, raw []byte) (StoredOverrides, error)
	DeleteOverrides(ctx context.Context, locale string) error
	List(ctx context.Context) ([]StoredOverrides, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger sets the logger used for fail-soft store errors.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	repo     Repository
	defaults Defaults
	locales  LocaleResolver
	logger   interfaces.Logger
	now      func() time.Time
}

// NewService wires the defaults, the override store and the locale resolver.
func NewService(repo Repository, defaults Defaults, locales LocaleResolver, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		defaults: defaults,
		locales:  locales,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) ResolveLayout(ctx context.Context, locale string) Layout {
	resolved := s.locales.Resolve(locale)
	base := s.baseLayout(resolved)
	logger := logging.WithLocaleContext(s.logger.WithContext(ctx), "layout", resolved)

	stored, err := s.repo.Get(ctx, resolved)
	switch {
	case errors.Is(err, ErrOverridesNotFound):
		return base
	case err != nil:
		logger.Warn("layout.overrides.load_failed", "error", err)
		return base
	}
	return MergeLayout(base, stored.Overrides)
}

func (s *service) baseLayout(locale string) Layout {
	if layout, ok := s.defaults.Layout(locale); ok {
		return layout
	}
	if layout, ok := s.defaults.Layout(s.locales.Default()); ok {
		return layout
	}
	return Layout{}
}

func (s *service) Overrides(ctx context.Context, locale string) (StoredOverrides, error) {
	return s.repo.Get(ctx, s.locales.Resolve(locale))
}

func (s *service) SaveOverrides(ctx context.Context, locale string, raw []byte) (StoredOverrides, error) {
	decoded, err := DecodeLayoutOverrides(raw)
	if err != nil {
		return StoredOverrides{}, err
	}
	resolved := s.locales.Resolve(locale)
	stored, err := s.repo.Put(ctx, StoredOverrides{
		Locale:    resolved,
		Overrides: decoded,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return StoredOverrides{}, err
	}
	logging.WithLocaleContext(s.logger.WithContext(ctx), "layout", resolved).
		Info("layout.overrides.saved", "nav", len(decoded.Nav), "footer_columns", len(decoded.FooterColumns))
	return stored, nil
}

func (s *service) DeleteOverrides(ctx context.Context, locale string) error {
	return s.repo.Delete(ctx, s.locales.Resolve(locale))
}

func (s *service) List(ctx context.Context) ([]StoredOverrides, error) {
	return s.repo.List(ctx)
}
