package pagetitles

import (
	"context"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/identity"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Service manages page title overrides for the admin API.
type Service interface {
	Create(ctx context.Context, req SaveRequest) (*Override, error)
	Update(ctx context.Context, id uuid.UUID, req SaveRequest) (*Override, error)
	Get(ctx context.Context, id uuid.UUID) (*Override, error)
	Find(ctx context.Context, pageKey, locale string) (*Override, error)
	List(ctx context.Context) ([]*Override, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocaleChecker reports whether a locale is configured.
type LocaleChecker interface {
	IsSupported(tag string) bool
}

// SaveRequest carries the editable fields of an override.
type SaveRequest struct {
	PageKey  string `json:"page_key"`
	Locale   string `json:"locale"`
	Title    string `json:"title"`
	Badge    string `json:"badge"`
	Subtitle string `json:"subtitle"`
}

// normalized canonicalizes the identifying fields. Text fields are stored as
// typed; only whitespace-only text is cleared.
func (r SaveRequest) normalized() SaveRequest {
	return SaveRequest{
		PageKey:  NormalizePageKey(r.PageKey),
		Locale:   strings.ToLower(strings.TrimSpace(r.Locale)),
		Title:    blankToEmpty(r.Title),
		Badge:    blankToEmpty(r.Badge),
		Subtitle: blankToEmpty(r.Subtitle),
	}
}

func blankToEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

type service struct {
	repo    Repository
	locales LocaleChecker
	now     func() time.Time
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func NewService(repo Repository, locales LocaleChecker, opts ...ServiceOption) Service {
	s := &service{repo: repo, locales: locales, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) Create(ctx context.Context, req SaveRequest) (*Override, error) {
	req = req.normalized()
	if err := s.validate(req); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return s.repo.Create(ctx, &Override{
		ID:        identity.PageTitleUUID(req.PageKey, req.Locale),
		PageKey:   req.PageKey,
		Locale:    req.Locale,
		Title:     req.Title,
		Badge:     req.Badge,
		Subtitle:  req.Subtitle,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update edits the text fields. Page key and locale identify the override
// and cannot move; a request naming different ones is rejected.
func (s *service) Update(ctx context.Context, id uuid.UUID, req SaveRequest) (*Override, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req = req.normalized()
	if req.PageKey == "" {
		req.PageKey = existing.PageKey
	}
	if req.Locale == "" {
		req.Locale = existing.Locale
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if req.PageKey != existing.PageKey || req.Locale != existing.Locale {
		return nil, goerrors.NewValidation("page title override is invalid",
			goerrors.FieldError{Field: "page_key", Message: "page key and locale cannot be changed"})
	}
	existing.Title = req.Title
	existing.Badge = req.Badge
	existing.Subtitle = req.Subtitle
	existing.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, existing)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Override, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Find(ctx context.Context, pageKey, locale string) (*Override, error) {
	return s.repo.Find(ctx, NormalizePageKey(pageKey), strings.ToLower(strings.TrimSpace(locale)))
}

func (s *service) List(ctx context.Context) ([]*Override, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) validate(req SaveRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.PageKey, validation.Required.Error("page key is required"), validation.Length(1, 200)),
		validation.Field(&req.Locale,
			validation.Required.Error("locale is required"),
			validation.By(func(any) error {
				if !s.locales.IsSupported(req.Locale) {
					return validation.NewError("validation_locale_unsupported", "locale is not supported")
				}
				return nil
			}),
		),
		validation.Field(&req.Title, validation.By(func(any) error {
			if req.Title == "" && req.Badge == "" && req.Subtitle == "" {
				return validation.NewError("validation_text_required", "one of title, badge or subtitle is required")
			}
			return nil
		})),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "page title override is invalid")
	}
	return nil
}
